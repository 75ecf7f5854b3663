// file: internals/features/mails/service/address.go
package service

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	nonLetters = regexp.MustCompile(`[^a-z\s]`)
	dmyPattern = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)
	ymdPattern = regexp.MustCompile(`^(\d{4})[/-](\d{1,2})[/-](\d{1,2})`)
)

// LocalPartFromName derives a mailbox local part from a person's name.
// Two or more parts pick one of six patterns by a checksum of the raw name,
// so the same name always maps to the same pattern. A single part gets a
// number from randN(99)+1. An empty result means no usable letters.
func LocalPartFromName(name string, randN func(int) int) string {
	clean := strings.TrimSpace(nonLetters.ReplaceAllString(strings.ToLower(name), ""))
	parts := strings.Fields(clean)
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("%s%d", parts[0], randN(99)+1)
	}

	first, last := parts[0], parts[len(parts)-1]
	variations := []string{
		first + "." + last,
		first + last[:1],
		first[:1] + last,
		first + "_" + last,
		first + last,
		first[:1] + last[:1] + last[1:],
	}
	sum := 0
	for _, r := range name {
		sum += int(r)
	}
	return variations[sum%len(variations)]
}

// BirthdateCombos returns fallback local parts built from prefix and a
// DD/MM/YYYY or YYYY-MM-DD birthdate, in the order they should be tried.
func BirthdateCombos(prefix, birthdate string) []string {
	birthdate = strings.TrimSpace(birthdate)
	var day, month, year string
	if m := dmyPattern.FindStringSubmatch(birthdate); m != nil {
		day, month, year = m[1], m[2], m[3]
	} else if m := ymdPattern.FindStringSubmatch(birthdate); m != nil {
		year, month, day = m[1], m[2], m[3]
	} else {
		return nil
	}

	day = pad2(day)
	month = pad2(month)
	yy := year[len(year)-2:]

	return []string{
		prefix + day + yy,
		prefix + month + yy,
		prefix + day + month,
		prefix + month + day,
		prefix + yy + day,
		prefix + yy + month,
		prefix + day + month + yy,
		prefix + month + day + yy,
		prefix + yy + month + day,
		prefix + yy + day + month,
	}
}

func pad2(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}
