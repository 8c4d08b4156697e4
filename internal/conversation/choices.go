package conversation

import (
	"strings"

	"github.com/oksasatya/superstar-bot/internal/domain/entity"
)

var revenueChoices = []struct {
	label string
	value entity.AnnualRevenue
}{
	{"أقل من 50 ألف", entity.RevenueLessThan50k},
	{"50-100 ألف", entity.Revenue50kTo100k},
	{"100-200 ألف", entity.Revenue100kTo200k},
	{"200-500 ألف", entity.Revenue200kTo500k},
	{"أكثر من 500 ألف", entity.RevenueMoreThan500k},
}

var businessTypeChoices = []struct {
	label string
	value entity.BusinessType
}{
	{"جملة", entity.BusinessWholesale},
	{"قطاعي", entity.BusinessRetail},
}

// ParseRevenue maps a revenue button label to its bucket. Unknown text falls
// back to the lowest bucket instead of failing.
func ParseRevenue(text string) entity.AnnualRevenue {
	t := strings.TrimSpace(text)
	for _, c := range revenueChoices {
		if c.label == t {
			return c.value
		}
	}
	return entity.RevenueLessThan50k
}

// ParseBusinessType maps a business type label; unknown text means retail.
func ParseBusinessType(text string) entity.BusinessType {
	t := strings.TrimSpace(text)
	for _, c := range businessTypeChoices {
		if c.label == t {
			return c.value
		}
	}
	return entity.BusinessRetail
}

func revenueLabel(v entity.AnnualRevenue) string {
	for _, c := range revenueChoices {
		if c.value == v {
			return c.label
		}
	}
	return revenueChoices[0].label
}

func businessTypeLabel(v entity.BusinessType) string {
	for _, c := range businessTypeChoices {
		if c.value == v {
			return c.label
		}
	}
	return businessTypeChoices[1].label
}
