package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodesHavePhasePrefixes(t *testing.T) {
	semCodes := []string{SEM001, SEM002, SEM003, SEM004, SEM005, SEM006, SEM007, SEM008, SEM009, SEM010, SEM011, SEM012, SEM013}
	for _, c := range semCodes {
		assert.True(t, strings.HasPrefix(c, "SEM"), "%s should have SEM prefix", c)
	}

	irgCodes := []string{IRG001, IRG002, IRG003, IRG004, IRG005}
	for _, c := range irgCodes {
		assert.True(t, strings.HasPrefix(c, "IRG"), "%s should have IRG prefix", c)
	}

	irvCodes := []string{IRV001, IRV002, IRV003, IRV004, IRV005, IRV006, IRV007, IRV008}
	for _, c := range irvCodes {
		assert.True(t, strings.HasPrefix(c, "IRV"), "%s should have IRV prefix", c)
	}
}

func TestCodesAreUnique(t *testing.T) {
	all := []string{
		SEM001, SEM002, SEM003, SEM004, SEM005, SEM006, SEM007, SEM008, SEM009, SEM010, SEM011, SEM012, SEM013,
		IRG001, IRG002, IRG003, IRG004, IRG005,
		IRV001, IRV002, IRV003, IRV004, IRV005, IRV006, IRV007, IRV008,
	}
	seen := make(map[string]bool)
	for _, c := range all {
		assert.False(t, seen[c], "duplicate code %s", c)
		seen[c] = true
	}
}
