package i18n

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/samber/lo"
)

var placeholderRegexp = regexp.MustCompile(`%([0-9]{1,2}|n)`)

// Arg substitutes args into Qt style markers. Each argument replaces every
// occurrence of the lowest numbered marker still present, so
// Arg("%2 of %1", "a", "b") gives "b of a".
func Arg(s string, args ...interface{}) string {
	for _, arg := range args {
		lowest := -1
		for _, match := range placeholderRegexp.FindAllStringSubmatch(s, -1) {
			number, err := strconv.Atoi(match[1])
			if err != nil || number == 0 {
				continue
			}
			if lowest == -1 || number < lowest {
				lowest = number
			}
		}
		if lowest == -1 {
			return s
		}

		marker := "%" + strconv.Itoa(lowest)
		value := fmt.Sprint(arg)
		s = placeholderRegexp.ReplaceAllStringFunc(s, func(match string) string {
			if match == marker {
				return value
			}
			return match
		})
	}
	return s
}

// Placeholders lists the distinct %1..%99 and %n markers in s, sorted
func Placeholders(s string) []string {
	res := lo.Uniq(placeholderRegexp.FindAllString(s, -1))
	sort.Slice(res, func(i, j int) bool {
		a, aErr := strconv.Atoi(res[i][1:])
		b, bErr := strconv.Atoi(res[j][1:])
		if aErr != nil || bErr != nil {
			// %n sorts last
			return aErr == nil
		}
		return a < b
	})
	return res
}
