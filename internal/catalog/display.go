package catalog

import "helicharter-portal/internal/domain"

// displayTier holds the marketing fields shown for helicopters of a given size.
// The backend has no source for these; listings built from a tier are flagged with
// DisplayDefaults so the front end can label rates and tours as indicative.
type displayTier struct {
	maxCapacity int
	hourlyRate  float64
	tours       []string
	features    []string
}

// Ordered by maxCapacity; the last tier takes everything larger.
var displayTiers = []displayTier{
	{
		maxCapacity: 4,
		hourlyRate:  150000,
		tours:       []string{"Nairobi City Tour", "Ngong Hills"},
		features:    []string{"Panoramic windows", "Noise-cancelling headsets"},
	},
	{
		maxCapacity: 6,
		hourlyRate:  250000,
		tours:       []string{"Nairobi City Tour", "Lake Naivasha", "Mount Kenya Scenic"},
		features:    []string{"Panoramic windows", "Noise-cancelling headsets", "Air conditioning"},
	},
	{
		maxCapacity: 0,
		hourlyRate:  400000,
		tours:       []string{"Maasai Mara Transfer", "Mount Kenya Scenic", "Coastal Transfer"},
		features:    []string{"Air conditioning", "Luggage hold", "VIP cabin"},
	},
}

func tierFor(capacity int) displayTier {
	for _, t := range displayTiers[:len(displayTiers)-1] {
		if capacity <= t.maxCapacity {
			return t
		}
	}
	return displayTiers[len(displayTiers)-1]
}

// Enrich turns backend helicopters into listings with display fields
func Enrich(helis []domain.Helicopter) []domain.HelicopterListing {
	out := make([]domain.HelicopterListing, 0, len(helis))
	for _, h := range helis {
		t := tierFor(h.Capacity)
		out = append(out, domain.HelicopterListing{
			Helicopter:      h,
			HourlyRate:      t.hourlyRate,
			Tours:           append([]string(nil), t.tours...),
			Features:        append([]string(nil), t.features...),
			DisplayDefaults: true,
		})
	}
	return out
}
