/*
Package utils contains the small helpers shared across shardnav packages.
*/
package utils

import (
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/dgryski/go-farm"
	log "github.com/sirupsen/logrus"
)

var logTag = "shardnav.utils"

// Difference will find the difference between two slices,
// and return items in slice1 not in slice2,
// and return items in slice2 not in slice1
func Difference(slice1 []string, slice2 []string) ([]string, []string) {
	in1 := make(map[string]struct{}, len(slice1))
	for _, s := range slice1 {
		in1[s] = struct{}{}
	}
	in2 := make(map[string]struct{}, len(slice2))
	for _, s := range slice2 {
		in2[s] = struct{}{}
	}

	var diff1, diff2 []string
	for _, s := range slice1 {
		if _, ok := in2[s]; !ok {
			diff1 = append(diff1, s)
		}
	}
	for _, s := range slice2 {
		if _, ok := in1[s]; !ok {
			diff2 = append(diff2, s)
		}
	}
	return diff1, diff2
}

// SelectInt takes an option and a default value and returns the default value if
// the option is equal to zero, and the option otherwise.
func SelectInt(opt, def int) int {
	if opt == 0 {
		return def
	}
	return opt
}

// SelectDuration takes an option and a default value and returns the default value if
// the option is equal to zero, and the option otherwise.
func SelectDuration(opt, def time.Duration) time.Duration {
	if opt == time.Duration(0) {
		return def
	}
	return opt
}

// SelectString takes an option and a default value and returns the default value if
// the option is empty, and the option otherwise.
func SelectString(opt, def string) string {
	if opt == "" {
		return def
	}
	return opt
}

// GetCheckSumFromNodes returns the farmhash fingerprint of the node list, independent of its order.
// nodes is not modified.
func GetCheckSumFromNodes(nodes []string) uint32 {
	sorted := make([]string, len(nodes))
	copy(sorted, nodes)
	sort.Strings(sorted)
	return farm.Fingerprint32([]byte(strings.Join(sorted, ";")))
}

// DoPanicRecovery is the common panic recover pattern for goroutines and callbacks.
// It has to be deferred directly.
func DoPanicRecovery(name string) {
	if r := recover(); r != nil {
		log.WithField("tag", logTag).Errorf("%s failed with error %v %s", name, r, string(debug.Stack()))
	}
}
