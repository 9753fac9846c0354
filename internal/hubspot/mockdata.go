// File path: internal/hubspot/mockdata.go
package hubspot

import (
	"context"
	"time"
)

// MockSource serves a small canned dataset so the dashboard can be exercised
// without a live CRM account. Records are generated relative to now so the
// staleness and engagement windows behave the same way they do against real
// data.
type MockSource struct{}

// DemoToken selects the mock source in place of a live CRM token.
const DemoToken = "demo"

func daysAgo(n int) time.Time {
	return time.Now().AddDate(0, 0, -n)
}

func isoDaysAgo(n int) string {
	return daysAgo(n).Format(time.RFC3339)
}

// FetchContacts returns the canned contact list.
func (MockSource) FetchContacts(ctx context.Context) ([]Contact, error) {
	return []Contact{
		{
			ID: "1",
			Properties: map[string]string{
				"email":            "john.doe@example.com",
				"phone":            "+1234567890",
				"firstname":        "John",
				"lastname":         "Doe",
				"lifecyclestage":   "lead",
				"hs_email_bounce":  "false",
				"hubspot_owner_id": "owner1",
				"lastmodifieddate": isoDaysAgo(0),
				"createdate":       isoDaysAgo(30),
			},
			CreatedAt: daysAgo(30),
			UpdatedAt: daysAgo(0),
		},
		{
			ID: "2",
			Properties: map[string]string{
				"email":            "jane.smith@example.com",
				"firstname":        "Jane",
				"lastname":         "Smith",
				"lifecyclestage":   "customer",
				"hs_email_bounce":  "true",
				"lastmodifieddate": isoDaysAgo(120),
				"createdate":       isoDaysAgo(180),
				"hubspotscore":     "82",
			},
			CreatedAt: daysAgo(180),
			UpdatedAt: daysAgo(120),
		},
		{
			ID: "3",
			Properties: map[string]string{
				"email":            "John.Doe@example.com",
				"phone":            "+0987654321",
				"firstname":        "Johnny",
				"lastname":         "Doe",
				"lifecyclestage":   "lead",
				"hubspot_owner_id": "owner2",
				"lastmodifieddate": isoDaysAgo(0),
				"createdate":       isoDaysAgo(10),
				"hs_lead_score":    "25",
			},
			CreatedAt: daysAgo(10),
			UpdatedAt: daysAgo(0),
		},
		{
			ID: "4",
			Properties: map[string]string{
				"phone":               "+1555123456",
				"firstname":           "Sam",
				"lastname":            "Carter",
				"lifecyclestage":      "marketingqualifiedlead",
				"hubspot_owner_id":    "owner1",
				"lastmodifieddate":    isoDaysAgo(95),
				"createdate":          isoDaysAgo(200),
				"associatedcompanyid": "101",
			},
			CreatedAt: daysAgo(200),
			UpdatedAt: daysAgo(95),
		},
	}, nil
}

// FetchDeals returns the canned deal list.
func (MockSource) FetchDeals(ctx context.Context) ([]Deal, error) {
	return []Deal{
		{
			ID: "d1",
			Properties: map[string]string{
				"dealname":            "Acme expansion",
				"amount":              "12000",
				"closedate":           isoDaysAgo(-30),
				"dealstage":           "qualifiedtobuy",
				"pipeline":            "default",
				"createdate":          isoDaysAgo(45),
				"hs_lastmodifieddate": isoDaysAgo(2),
			},
			CreatedAt: daysAgo(45),
			UpdatedAt: daysAgo(2),
		},
		{
			ID: "d2",
			Properties: map[string]string{
				"dealname":            "Globex renewal",
				"dealstage":           "contractsent",
				"pipeline":            "default",
				"createdate":          isoDaysAgo(120),
				"hs_lastmodifieddate": isoDaysAgo(60),
			},
			CreatedAt: daysAgo(120),
			UpdatedAt: daysAgo(60),
		},
		{
			ID: "d3",
			Properties: map[string]string{
				"dealname":  "Initech pilot",
				"amount":    "3500",
				"dealstage": "appointmentscheduled",
				"pipeline":  "default",
			},
			CreatedAt: daysAgo(5),
			UpdatedAt: daysAgo(1),
		},
	}, nil
}

// FetchCompanies returns the canned company list.
func (MockSource) FetchCompanies(ctx context.Context) ([]Company, error) {
	return []Company{
		{
			ID: "101",
			Properties: map[string]string{
				"name":              "Acme Corp",
				"domain":            "acme.example.com",
				"industry":          "Manufacturing",
				"annualrevenue":     "25000000",
				"numberofemployees": "240",
			},
			CreatedAt: daysAgo(400),
			UpdatedAt: daysAgo(12),
		},
		{
			ID: "102",
			Properties: map[string]string{
				"name":   "Globex",
				"domain": "globex.example.com",
			},
			CreatedAt: daysAgo(300),
			UpdatedAt: daysAgo(90),
		},
	}, nil
}
