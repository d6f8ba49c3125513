// Package dto holds the wire format of missing track lists and its
// conversion to model types.
package dto
