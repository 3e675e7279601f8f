// Package resource defines the versioned artifact record and the
// semantic-version ordering used for resolution.
package resource

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/Masterminds/semver/v3"
)

// Identifier and version limits, matching the ingestion schema.
const (
	MaxIDLength      = 100
	MaxVersionLength = 20
)

var (
	idPattern      = regexp.MustCompile(`^[A-Za-z0-9._-]{1,100}$`)
	versionPattern = regexp.MustCompile(`^[0-9.]{1,20}$`)
)

// Resource is a versioned artifact record: a disk image, kernel, binary,
// workload, or similar. The (ID, ResourceVersion) pair forms the natural key;
// multiple versions of the same id coexist in the store.
type Resource struct {
	ID              string   `bson:"id" json:"id"`
	ResourceVersion string   `bson:"resource_version" json:"resource_version"`
	Category        string   `bson:"category,omitempty" json:"category,omitempty"`
	Architecture    string   `bson:"architecture,omitempty" json:"architecture,omitempty"`
	Description     string   `bson:"description,omitempty" json:"description,omitempty"`
	Author          []string `bson:"author,omitempty" json:"author,omitempty"`
	License         string   `bson:"license,omitempty" json:"license,omitempty"`
	SourceURL       string   `bson:"source_url,omitempty" json:"source_url,omitempty"`
	URL             string   `bson:"url,omitempty" json:"url,omitempty"`
	Size            int64    `bson:"size,omitempty" json:"size,omitempty"`
	MD5Sum          string   `bson:"md5sum,omitempty" json:"md5sum,omitempty"`
	IsZipped        bool     `bson:"is_zipped,omitempty" json:"is_zipped,omitempty"`
	IsTarArchive    bool     `bson:"is_tar_archive,omitempty" json:"is_tar_archive,omitempty"`
	RootPartition   string   `bson:"root_partition,omitempty" json:"root_partition,omitempty"`
	Tags            []string `bson:"tags,omitempty" json:"tags,omitempty"`
	Gem5Versions    []string `bson:"gem5_versions,omitempty" json:"gem5_versions,omitempty"`
	Date            string   `bson:"date,omitempty" json:"date,omitempty"`

	// Resources holds a workload's dependency declarations: a map from the
	// workload's parameter name to the id of the resource it requires.
	Resources map[string]string `bson:"resources,omitempty" json:"resources,omitempty"`
	Workloads []string          `bson:"workloads,omitempty" json:"workloads,omitempty"`

	// Database is the provenance tag of the sub-collection the record came from.
	Database string `bson:"database,omitempty" json:"database,omitempty"`

	// LatestVersion and Score are computed per request, never stored.
	LatestVersion string  `bson:"latest_version,omitempty" json:"latest_version,omitempty"`
	Score         float64 `bson:"score,omitempty" json:"score,omitempty"`
}

// WorkloadRef identifies a workload returned by a reverse-dependency lookup.
// Only the id is carried; the wire name matches the store's group key.
type WorkloadRef struct {
	ID string `bson:"_id" json:"_id"`
}

// FilterValues holds the distinct values of the filterable fields.
type FilterValues struct {
	Category     []string `bson:"category" json:"category"`
	Architecture []string `bson:"architecture" json:"architecture"`
	Gem5Versions []string `bson:"gem5_versions" json:"gem5_versions"`
}

// IsEmpty reports whether no filter values are present at all.
func (v FilterValues) IsEmpty() bool {
	return len(v.Category) == 0 && len(v.Architecture) == 0 && len(v.Gem5Versions) == 0
}

// ValidateID checks an id against the identifier pattern
// (alphanumeric, dash, underscore, dot; at most 100 chars).
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("resource id must be alphanumeric, dash, underscore, or dot (max %d chars)", MaxIDLength)
	}
	return nil
}

// ValidateVersion checks a version string (digits and dots, at most 20 chars).
func ValidateVersion(version string) error {
	if !versionPattern.MatchString(version) {
		return fmt.Errorf("resource version must contain only digits and dots (max %d chars)", MaxVersionLength)
	}
	return nil
}

// CompareVersions orders two version strings by semantic-version precedence.
// Strings that do not parse as semantic versions sort below ones that do;
// two unparseable strings fall back to lexicographic order so the total
// ordering stays deterministic.
func CompareVersions(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	switch {
	case errA == nil && errB == nil:
		return va.Compare(vb)
	case errA == nil:
		return 1
	case errB == nil:
		return -1
	default:
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	}
}

// Latest returns the maximum resource_version among the given documents
// under semantic-version precedence, or "" for an empty slice.
func Latest(resources []Resource) string {
	latest := ""
	for _, r := range resources {
		if latest == "" || CompareVersions(r.ResourceVersion, latest) > 0 {
			latest = r.ResourceVersion
		}
	}
	return latest
}

// SortByVersionDesc orders documents newest-first by resource_version.
// Ties (which only occur on malformed duplicates) break by id ascending.
func SortByVersionDesc(resources []Resource) {
	sort.SliceStable(resources, func(i, j int) bool {
		c := CompareVersions(resources[i].ResourceVersion, resources[j].ResourceVersion)
		if c != 0 {
			return c > 0
		}
		return resources[i].ID < resources[j].ID
	})
}

// SortVersionsDesc orders version strings newest-first in place.
func SortVersionsDesc(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		return CompareVersions(versions[i], versions[j]) > 0
	})
}
