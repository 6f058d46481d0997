//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

//
// SETS AND SLICES
//

// ToSet - returns a blank map of a slice
func ToSet[T comparable](sl []T) map[T]struct{} {
	m := make(map[T]struct{})
	for i := 0; i < len(sl); i++ {
		m[sl[i]] = struct{}{}
	}
	return m
}

// FirstSeen - the distinct items of a slice in the order they first appear: [a, b, a, c] -> [a, b, c]
func FirstSeen[T comparable](s []T) []T {
	seen := make(map[T]struct{}, len(s))
	var result []T
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// SetSubtraction - the items of aa that are not in bb, order of aa preserved
func SetSubtraction[T comparable](aa []T, bb []T) []T {
	// 	aa := []string{"a", "b", "c", "d", "g", "h"}
	//	bb := []string{"a", "b", "e", "f", "g"}
	//	dd := SetSubtraction(aa, bb)
	//  [c d h]
	drop := ToSet(bb)
	var result []T
	for _, a := range aa {
		if _, ok := drop[a]; !ok {
			result = append(result, a)
		}
	}
	return result
}

// FirstN - at most the first n items of a slice
func FirstN[T any](s []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(s) <= n {
		return s
	}
	return s[:n]
}
