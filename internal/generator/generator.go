// Package generator synthesizes the deterministic mock lead pool.
package generator

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sells-group/leadfinder/internal/model"
	"github.com/sells-group/leadfinder/internal/scorer"
)

// DefaultCount is the size of the pool served to a new session.
const DefaultCount = 36

var industries = []string{
	"Software",
	"Marketing",
	"Healthcare",
	"Finance",
	"E-commerce",
	"Education",
	"Manufacturing",
	"Real Estate",
	"Logistics",
	"Consulting",
}

var locations = []string{
	"San Francisco, CA",
	"New York, NY",
	"Austin, TX",
	"Seattle, WA",
	"Boston, MA",
	"Chicago, IL",
	"Denver, CO",
	"Atlanta, GA",
	"Miami, FL",
	"Los Angeles, CA",
}

var companies = []string{
	"GreenLeaf Labs",
	"Skyline Systems",
	"NovaReach Marketing",
	"Summit Health Co",
	"Copper Bank",
	"BrightCart",
	"LearnSphere",
	"ForgeWorks",
	"Harbor Realty",
	"RouteRunner",
	"Northstar Consulting",
	"Blue Ocean Analytics",
	"Aurora Soft",
	"Pinnacle Finance",
	"Cloudbridge",
	"Sunrise Retail",
	"Peak Education",
	"Silverline Manufacturing",
	"UrbanNest Real Estate",
	"SwiftShip Logistics",
}

var firstNames = []string{
	"Ava", "Liam", "Olivia", "Noah", "Emma", "Ethan", "Mia", "Lucas", "Sophia", "Mason",
	"Isabella", "James", "Charlotte", "Henry", "Amelia", "Leo", "Evelyn", "Benjamin", "Harper", "Elijah",
}

var lastNames = []string{
	"Johnson", "Smith", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
	"Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
}

var budgetTiers = []float64{8000, 15000, 24000, 36000, 52000, 78000, 120000}

var sourceTags = []string{"inbound", "outbound", "partner"}

// Per-field offsets into the reference lists.
const (
	offsetFirstName = 3
	offsetLastName  = 5
	offsetCompany   = 7
	offsetIndustry  = 11
	offsetLocation  = 13
	offsetBudget    = 17

	minBudget   = 3000
	maxAgeDays  = 180
	noiseSpread = 5000
)

// Industries returns the reference industry list in display order.
func Industries() []string {
	return append([]string(nil), industries...)
}

// Generate returns count scored leads dated relative to the current time.
func Generate(count int) []model.Lead {
	return GenerateAt(count, time.Now())
}

// GenerateAt returns count scored leads dated relative to now. The same
// index always yields the same lead apart from AddedAt.
func GenerateAt(count int, now time.Time) []model.Lead {
	if count <= 0 {
		return []model.Lead{}
	}

	leads := make([]model.Lead, 0, count)
	for i := range count {
		first := pick(firstNames, i+offsetFirstName)
		last := pick(lastNames, i+offsetLastName)
		company := pick(companies, i+offsetCompany)

		noise := float64((i*137)%noiseSpread) - noiseSpread/2
		budget := max(minBudget, pick(budgetTiers, i+offsetBudget)+noise)

		lead := model.Lead{
			ID:       fmt.Sprintf("lead_%04d", i+1),
			Name:     first + " " + last,
			Email:    fmt.Sprintf("%s.%s@%s.com", slugify(first), slugify(last), slugify(company)),
			Company:  company,
			Industry: pick(industries, i+offsetIndustry),
			Budget:   budget,
			Location: pick(locations, i+offsetLocation),
			AddedAt:  now.AddDate(0, 0, -((i * 3) % maxAgeDays)),
			Tags:     []string{sourceTags[i%len(sourceTags)]},
		}
		leads = append(leads, scorer.Apply(lead))
	}
	return leads
}

func pick[T any](list []T, seed int) T {
	return list[seed%len(list)]
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// slugify lower-cases s, joins alphanumeric runs with dots, and trims edge dots.
func slugify(s string) string {
	s = nonSlug.ReplaceAllString(strings.ToLower(s), ".")
	return strings.Trim(s, ".")
}
