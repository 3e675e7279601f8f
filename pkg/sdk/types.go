package resources

// Resource is a versioned artifact record as returned by the API.
type Resource struct {
	ID              string   `json:"id"`
	ResourceVersion string   `json:"resource_version"`
	Category        string   `json:"category,omitempty"`
	Architecture    string   `json:"architecture,omitempty"`
	Description     string   `json:"description,omitempty"`
	Author          []string `json:"author,omitempty"`
	License         string   `json:"license,omitempty"`
	SourceURL       string   `json:"source_url,omitempty"`
	URL             string   `json:"url,omitempty"`
	Size            int64    `json:"size,omitempty"`
	MD5Sum          string   `json:"md5sum,omitempty"`
	IsZipped        bool     `json:"is_zipped,omitempty"`
	IsTarArchive    bool     `json:"is_tar_archive,omitempty"`
	RootPartition   string   `json:"root_partition,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Gem5Versions    []string `json:"gem5_versions,omitempty"`
	Date            string   `json:"date,omitempty"`

	Resources map[string]string `json:"resources,omitempty"`
	Workloads []string          `json:"workloads,omitempty"`

	Database      string  `json:"database,omitempty"`
	LatestVersion string  `json:"latest_version,omitempty"`
	Score         float64 `json:"score,omitempty"`
}

// BatchPair names one id+version pair in a batch request.
// An empty Version requests every version of the id.
type BatchPair struct {
	ID      string
	Version string
}

// SearchQuery holds the parameters of a search call. Zero values fall back
// to the server defaults (relevance sort, page 1, page size 10).
type SearchQuery struct {
	// Query is the free-text search term.
	Query string
	// MustInclude is a filter expression of the form
	// "field,value1,value2;field2,value1". Valid fields: category,
	// architecture, gem5_versions, tags.
	MustInclude string
	// Sort is one of: relevance, date, name, version, id_asc, id_desc.
	Sort     string
	Page     int
	PageSize int
}

// SearchResult is one page of search matches plus the pre-pagination total.
type SearchResult struct {
	Documents  []Resource `json:"documents"`
	TotalCount int        `json:"totalCount"`
}

// FilterValues holds the distinct values of the filterable fields.
type FilterValues struct {
	Category     []string `json:"category"`
	Architecture []string `json:"architecture"`
	Gem5Versions []string `json:"gem5_versions"`
}

// WorkloadRef identifies a workload that depends on a resource.
type WorkloadRef struct {
	ID string `json:"_id"`
}

// HealthReport is the API health snapshot.
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
