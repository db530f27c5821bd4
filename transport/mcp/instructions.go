package mcp

const instructions = `San Andreas - Complete Instructions

OBJECTIVE:
Complete every mission in the chain to win. You lose when CJ's health reaches 0.

TURNS:
Every command that acts on the world ends a turn. Ending a turn lets enemies
and police act and advances the game clock. Periodic upkeep runs at the start
of the next turn. Invalid commands, help, save and load do not end a turn.

MAP LEGEND:
• @ - CJ (you)
• N - NPC (talk with e to get missions)
• B S - Big Smoke, who fills two cells
• E - Gang enemy
• P - Police officer
• V - Vehicle (stand next to it and press e to get in)
• S - Shop
• W - Weapon on the ground
• H - Health item
• $ - Money
• F - Food
• D - Drink
• I - Other item
• . - Empty street
• (blank) - Not discovered yet

COMMANDS:
• w a s d - Move up, left, down, right (drives when in a vehicle)
• e - Interact with a neighbouring cell: talk, enter a vehicle, pick up an
  item or open a shop
• f - Attack the nearest adjacent enemy with your weapon or fists
• x - Leave the vehicle
• i or u - Show the inventory; u N uses item N directly
• v - Save, l - Load
• h or ? - Help
• q - Quit

MENUS:
Shops, inventories and mission offers open a prompt. Answer it with the next
command: a number for menus (0 leaves a shop), y or n for a mission offer.

MISSIONS:
Missions unlock in order. An NPC only offers a mission once its prerequisites
are complete. Finishing a mission pays its reward money and sometimes an item.

SURVIVAL:
• Hunger and thirst drop over time. When either reaches 0, CJ loses health.
  Eat food and drink to refill them.
• Enemies next to CJ attack every turn.
• Defeating an enemy raises the wanted level, and defeating police raises it
  more. While wanted, police chase CJ and reinforcements arrive. The level
  drops slowly over time.
• Health packs heal up to maximum health.

TOOLS:
• send_command accepts a commands list to play several turns in one call.
  The list stops early when the game ends.
• game_state shows the map, the HUD and the nearest threat at any time.`
