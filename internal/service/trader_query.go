package service

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/woodcrrests/scratchcard_api/internal/repository"
	"github.com/woodcrrests/scratchcard_api/internal/utils"
)

// dateLayout is the day/month/year format accepted by date range filters,
// e.g. 5/1/2024 or 15/11/2024.
const dateLayout = "2/1/2006"

// ParseTraderQuery translates the trader list query parameters into a
// repository filter.
//
// Grammar:
//   - search: substring matched across the searchable trader fields
//   - filter=a,b: each named field needs gte_<field> and/or lte_<field>;
//     the field "date" targets the creation timestamp, bounds in D/M/YYYY
//   - sort + order (asc default); absent sort means newest first
//   - page (default 1) and limit (default 10)
//
// A named filter field without either bound, a malformed date, an unknown
// field, or a bad order value is a validation error.
func ParseTraderQuery(values url.Values) (*repository.TraderFilter, error) {
	f := &repository.TraderFilter{
		Search: values.Get("search"),
		Page:   intParam(values, "page", 1),
		Limit:  intParam(values, "limit", 10),
	}

	if raw := values.Get("filter"); raw != "" {
		for _, field := range strings.Split(raw, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			if _, ok := repository.TraderColumn(field); !ok {
				return nil, utils.Validationf("unknown filter field %q", field)
			}

			gteRaw := values.Get("gte_" + field)
			lteRaw := values.Get("lte_" + field)
			if gteRaw == "" && lteRaw == "" {
				return nil, utils.Validationf(
					"either gte_%s or lte_%s is required for filtering %s", field, field, field)
			}

			rng := repository.FieldRange{Field: field}
			if field == "date" {
				if gteRaw != "" {
					t, err := time.Parse(dateLayout, gteRaw)
					if err != nil {
						return nil, utils.Validationf("invalid date %q for gte_date, expected D/M/YYYY", gteRaw)
					}
					rng.GTE = t
				}
				if lteRaw != "" {
					t, err := time.Parse(dateLayout, lteRaw)
					if err != nil {
						return nil, utils.Validationf("invalid date %q for lte_date, expected D/M/YYYY", lteRaw)
					}
					rng.LTE = t
				}
			} else {
				// Raw comparison, no coercion.
				if gteRaw != "" {
					rng.GTE = gteRaw
				}
				if lteRaw != "" {
					rng.LTE = lteRaw
				}
			}
			f.Ranges = append(f.Ranges, rng)
		}
	}

	if sort := values.Get("sort"); sort != "" {
		if _, ok := repository.TraderColumn(sort); !ok {
			return nil, utils.Validationf("unknown sort field %q", sort)
		}
		f.Sort = sort

		order := strings.ToLower(values.Get("order"))
		switch order {
		case "", "asc":
			f.Order = "asc"
		case "desc":
			f.Order = "desc"
		default:
			return nil, utils.Validationf("invalid order %q, expected asc or desc", order)
		}
	}

	return f, nil
}

// intParam reads a positive integer query parameter, falling back to def on
// absence or malformed input.
func intParam(values url.Values, key string, def int) int {
	v := values.Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}
