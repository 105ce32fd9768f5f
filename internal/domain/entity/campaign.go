package entity

import "time"

// Campaign is a local advertising campaign owned by a user.
type Campaign struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	RadiusKm  int       `json:"radiusKm"`
	BudgetKr  int       `json:"budgetKr"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// AdCount is populated on list queries only.
	AdCount int `json:"adCount"`
}

// Ad is a creative belonging to a campaign.
type Ad struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaignId"`
	Title      string    `json:"title"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Metric is one day of delivery numbers for a campaign.
type Metric struct {
	ID          string    `json:"id"`
	CampaignID  string    `json:"campaignId"`
	Date        time.Time `json:"date"`
	Impressions int       `json:"impressions"`
	Clicks      int       `json:"clicks"`
	SpendKr     int       `json:"spendKr"`
}

// CampaignDetail is a campaign with its ads and recent metrics attached.
type CampaignDetail struct {
	Campaign
	Ads     []Ad     `json:"ads"`
	Metrics []Metric `json:"metrics"`
}
