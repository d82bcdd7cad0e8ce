package common

import "strings"

func StringsIndexOf(hay []string, needle string) int {
	for i, s := range hay {
		if s == needle {
			return i
		}
	}
	return -1
}

func IsInList(hay []string, needle string) bool {
	return StringsIndexOf(hay, needle) >= 0
}

// StringsRemove removes needle keeping the order of the rest, this *will*
// modify the original slice.
func StringsRemove(hay []string, needle string) ([]string, bool) {
	idx := StringsIndexOf(hay, needle)
	if idx < 0 {
		return hay, false
	}
	return append(hay[:idx], hay[idx+1:]...), true
}

// CleanIDs trims ids, drops empty ones and duplicates.
func CleanIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" && !IsInList(out, id) {
			out = append(out, id)
		}
	}
	return out
}
