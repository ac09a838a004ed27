package restaurant

import "yumexpress-be/internal/utils"

// NormalizeTag maps a tag onto the canonical vocabulary: lowercase words
// joined by dashes ("FAST FOOD" becomes "fast-food").
func NormalizeTag(tag string) string {
	return utils.Slugify(tag)
}

// NormalizeTags normalizes, drops empties and removes duplicates keeping first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		n := NormalizeTag(t)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
