package resource

import "go.mongodb.org/mongo-driver/bson"

// IDFilter matches every version of a resource id.
func IDFilter(id string) bson.D {
	return bson.D{{Key: "id", Value: id}}
}

// IDVersionFilter matches a single id+version document.
func IDVersionFilter(id, version string) bson.D {
	return bson.D{
		{Key: "id", Value: id},
		{Key: "resource_version", Value: version},
	}
}

// Projection is the explicit field allow-list from the resource schema,
// with the store-internal _id excluded.
func Projection() bson.D {
	allowed := []string{
		"id", "resource_version", "category", "author", "code_examples",
		"description", "source_url", "license", "tags", "example_usage",
		"gem5_versions", "size", "url", "is_tar_archive", "md5sum",
		"is_zipped", "architecture", "root_partition", "resource_directory",
		"arguments", "region_id", "simpoint_interval", "simpoint_list",
		"weight_list", "warmup_interval", "workload_name", "function",
		"additional_params", "resources", "source", "documentation",
		"workloads", "input-group", "date",
	}
	proj := make(bson.D, 0, len(allowed)+1)
	for _, f := range allowed {
		proj = append(proj, bson.E{Key: f, Value: 1})
	}
	return append(proj, bson.E{Key: "_id", Value: 0})
}
