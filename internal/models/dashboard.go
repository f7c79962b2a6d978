package models

// DashboardStats is derived from the workspace on every read
type DashboardStats struct {
	TotalCampaigns  int `json:"totalCampaigns"`
	ActiveCampaigns int `json:"activeCampaigns"`
	EmailsPending   int `json:"emailsPending"`
	EmailsApproved  int `json:"emailsApproved"`
	EmailsSent      int `json:"emailsSent"`
	EmailsReplied   int `json:"emailsReplied"`
	OutletsTargeted int `json:"outletsTargeted"`
	ContactsReached int `json:"contactsReached"`
}
