package mission

import "github.com/wricardo/sanandreas/game/entity"

const (
	SweetMission    = "Sweet's Mission"
	RyderMission    = "Ryder's Mission"
	BigSmokeMission = "Big Smoke's Mission"
)

// DefaultChain returns the three missions of the Grove Street story.
func DefaultChain() []*entity.Mission {
	return []*entity.Mission{
		{
			Name:        SweetMission,
			Description: "Find the Pistol and bring it back to Sweet.",
			Objective:   entity.Objective{Kind: entity.ObjectiveHasItem, Item: "Pistol", ItemKind: entity.KindWeapon},
			RewardMoney: 100,
		},
		{
			Name:          RyderMission,
			Description:   "Find the Shotgun and show it to Ryder.",
			Objective:     entity.Objective{Kind: entity.ObjectiveHasItem, Item: "Shotgun", ItemKind: entity.KindWeapon},
			RewardMoney:   150,
			Prerequisites: []string{SweetMission},
		},
		{
			Name:          BigSmokeMission,
			Description:   "Collect the Cash Bundle for Big Smoke.",
			Objective:     entity.Objective{Kind: entity.ObjectiveHasItem, Item: "Cash Bundle", ItemKind: entity.KindMoneyBundle},
			RewardMoney:   200,
			Prerequisites: []string{SweetMission, RyderMission},
			Gate: &entity.Gate{
				Objective: entity.Objective{Kind: entity.ObjectiveHasItem, Item: "Cash Bundle", ItemKind: entity.KindMoneyBundle},
				Hint:      "You need to find that cash bundle, CJ! It's somewhere out there.",
				Ack:       "Ah, you got the cash! My man!",
			},
		},
	}
}
