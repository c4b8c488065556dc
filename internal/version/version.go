package version

import (
	_ "embed" // for go:embed
	"strconv"
	"strings"
)

// VERSION holds the storefront version
//
//go:embed VERSION
var VERSION string

// Version segments
var (
	MAJOR int
	MINOR int
	FIX   int
	PRE   int
)

func init() {
	VERSION = strings.TrimSpace(VERSION)
	MAJOR, MINOR, FIX, PRE = parse(VERSION)
}

// parse splits a version of the form MAJOR.MINOR.FIX[-prN]; missing or
// malformed segments are 0
func parse(v string) (major, minor, fix, pre int) {
	core, preRelease, _ := strings.Cut(v, "-")
	segments := strings.SplitN(core, ".", 3)
	nums := make([]int, 3)
	for i, s := range segments {
		nums[i], _ = strconv.Atoi(s)
	}
	if preRelease != "" {
		pre, _ = strconv.Atoi(strings.TrimPrefix(preRelease, "pr"))
	}
	return nums[0], nums[1], nums[2], pre
}

// UserAgent is sent by the maintenance cli and used in the startup log
func UserAgent() string {
	return "storefront/" + VERSION
}
