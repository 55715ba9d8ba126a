package db_models

type PlanType string

const (
	PlanBasic    PlanType = "basic"
	PlanSilver   PlanType = "silver"
	PlanGold     PlanType = "gold"
	PlanPlatinum PlanType = "platinum"
)

type SubscriptionPlan struct {
	BaseModel
	PlanType    PlanType `gorm:"uniqueIndex;not null"`
	Name        string   `gorm:"not null"`
	Description *string
	PriceMinor  int64  // 2999 = $29.99
	Currency    string `gorm:"size:3"`

	DurationDays int `gorm:"default:0"`
	ProductLimit int `gorm:"default:0"`

	// Slot ceilings consumed by promotion creation. Expired promotions still
	// count toward the ceiling; only a new subscription code resets it.
	MaxFeaturedSlots int `gorm:"default:0"`
	MaxHotDealSlots  int `gorm:"default:0"`

	IsActive bool `gorm:"default:true"`
}

// DefaultPlans returns the seed catalog. Slot ceilings are configuration,
// not rules baked into the promotion logic.
func DefaultPlans() []SubscriptionPlan {
	return []SubscriptionPlan{
		{PlanType: PlanBasic, Name: "Basic", PriceMinor: 0, Currency: "USD", DurationDays: 0, ProductLimit: 5, MaxFeaturedSlots: 0, MaxHotDealSlots: 0},
		{PlanType: PlanSilver, Name: "Silver", PriceMinor: 2999, Currency: "USD", DurationDays: 30, ProductLimit: 25, MaxFeaturedSlots: 1, MaxHotDealSlots: 1},
		{PlanType: PlanGold, Name: "Gold", PriceMinor: 5999, Currency: "USD", DurationDays: 30, ProductLimit: 100, MaxFeaturedSlots: 2, MaxHotDealSlots: 1},
		{PlanType: PlanPlatinum, Name: "Platinum", PriceMinor: 9999, Currency: "USD", DurationDays: 30, ProductLimit: 500, MaxFeaturedSlots: 3, MaxHotDealSlots: 3},
	}
}
