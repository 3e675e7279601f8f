package sortby

// Key is the search result ordering.
type Key string

// Sort keys accepted by the search operation.
const (
	// Relevance orders by descending text-search score. Without a search
	// term there is no score; the query layer falls back to id ascending.
	Relevance Key = "relevance"
	Date      Key = "date"
	Name      Key = "name"
	Version   Key = "version"
	IDAsc     Key = "id_asc"
	IDDesc    Key = "id_desc"
)

// Parse maps a raw sort parameter to a Key. Empty or unrecognized values
// coerce to Relevance, mirroring the public query contract.
func Parse(raw string) Key {
	switch Key(raw) {
	case Date, Name, Version, IDAsc, IDDesc:
		return Key(raw)
	default:
		return Relevance
	}
}

// IsValid checks if the key is one of the supported values.
func (k Key) IsValid() bool {
	switch k {
	case Relevance, Date, Name, Version, IDAsc, IDDesc:
		return true
	}
	return false
}
