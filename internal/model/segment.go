package model

import "strings"

type Segment string

const (
	SegmentNew       Segment = "new"
	SegmentReturning Segment = "returning"
	SegmentVIP       Segment = "vip"
	SegmentAtRisk    Segment = "at_risk"
)

// Segments lists all segments in canonical order. The generator and the
// segment-distribution aggregation both iterate in this order.
var Segments = []Segment{SegmentNew, SegmentReturning, SegmentVIP, SegmentAtRisk}

func (s Segment) String() string { return string(s) }

func (s Segment) Valid() bool {
	return s == SegmentNew || s == SegmentReturning || s == SegmentVIP || s == SegmentAtRisk
}

// ParseSegment normalizes input. Returns (value, true) if valid; otherwise ("", false).
func ParseSegment(s string) (Segment, bool) {
	seg := Segment(strings.ToLower(strings.TrimSpace(s)))
	if seg.Valid() {
		return seg, true
	}
	return "", false
}
