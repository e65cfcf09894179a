/*
cii.go - Cost Inflation Index table

The CII is a published year-keyed index used to scale a historical
purchase cost forward to the sale year. It is versioned by tax-law year
and loaded once at process start; lookups outside the known range clamp
to the nearest boundary year rather than failing, since the table is
extended annually.
*/
package capitalgains

// CIITable maps a calendar year to its cost inflation index value.
type CIITable map[int]float64

// Lookup returns the index for a year, clamping out-of-table years to the
// nearest table boundary. The second return reports whether clamping
// happened.
func (t CIITable) Lookup(year int) (float64, bool) {
	if v, ok := t[year]; ok {
		return v, false
	}
	minYear, maxYear := 0, 0
	for y := range t {
		if minYear == 0 || y < minYear {
			minYear = y
		}
		if y > maxYear {
			maxYear = y
		}
	}
	if year < minYear {
		return t[minYear], true
	}
	return t[maxYear], true
}
