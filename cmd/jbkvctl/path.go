package main

import (
	"fmt"
	"strings"

	"github.com/joshuapare/jbkv"
)

// splitPath turns a "/"-delimited path argument into path segments,
// ignoring leading/trailing slashes and empty segments so "/a/b/" and
// "a/b" navigate identically.
func splitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// findPath walks segments from root via Find, failing on the first
// missing segment.
func findPath(root jbkv.VolumeNode, segments []string) (jbkv.VolumeNode, error) {
	node := root
	for _, s := range segments {
		node = node.Find(s)
		if !node.IsValid() {
			return nil, fmt.Errorf("no such path segment %q", s)
		}
	}
	return node, nil
}

// createPath walks segments from root via Create, inserting any missing
// segment along the way.
func createPath(root jbkv.VolumeNode, segments []string) jbkv.VolumeNode {
	node := root
	for _, s := range segments {
		node = node.Create(s)
	}
	return node
}
