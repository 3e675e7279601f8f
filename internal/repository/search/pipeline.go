package search

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gem5-vision/resources-api/internal/domain/search/filter"
	"github.com/gem5-vision/resources-api/internal/domain/search/request"
	"github.com/gem5-vision/resources-api/internal/domain/search/sortby"
)

// boostedGem5Version is the compatibility version whose matches get a
// relevance boost alongside id matches.
const boostedGem5Version = "24.1"

// textSearchPaths is the fixed field set the free-text term runs over.
var textSearchPaths = bson.A{"id", "description", "category", "architecture", "tags"}

// fetchPipeline builds the full aggregation for one result page:
// text search (when a term is present), filter conjunction, latest-version
// dedup, deterministic sort, then skip/limit.
func fetchPipeline(req request.Request) mongo.Pipeline {
	p := mongo.Pipeline{}
	p = append(p, searchStages(req.ContainsStr())...)
	p = append(p, filterStages(req.Filters())...)
	p = append(p, latestVersionStages()...)
	p = append(p, sortStages(req.Sort(), req.ContainsStr() != "")...)
	p = append(p,
		bson.D{{Key: "$skip", Value: req.Skip()}},
		bson.D{{Key: "$limit", Value: req.PageSize()}},
		bson.D{{Key: "$unset", Value: bson.A{"_id", "resource_version_parts", "ver_latest"}}},
	)
	return p
}

// countPipeline builds the total-count aggregation over the same predicate
// as fetchPipeline, without ordering or pagination.
func countPipeline(req request.Request) mongo.Pipeline {
	p := mongo.Pipeline{}
	p = append(p, searchStages(req.ContainsStr())...)
	p = append(p, filterStages(req.Filters())...)
	p = append(p, latestVersionStages()...)
	p = append(p, bson.D{{Key: "$count", Value: "totalCount"}})
	return p
}

// searchStages builds the Atlas $search stage: a fuzzy must-clause over the
// fixed text paths, with should-clauses boosting id matches and the current
// gem5 version, then the relevance score projection. No stages without a term.
func searchStages(term string) mongo.Pipeline {
	if term == "" {
		return nil
	}

	boost := bson.D{{Key: "boost", Value: bson.D{{Key: "value", Value: 10}}}}
	return mongo.Pipeline{
		bson.D{{Key: "$search", Value: bson.D{
			{Key: "compound", Value: bson.D{
				{Key: "must", Value: bson.A{
					bson.D{{Key: "text", Value: bson.D{
						{Key: "query", Value: term},
						{Key: "path", Value: textSearchPaths},
						{Key: "fuzzy", Value: bson.D{
							{Key: "maxEdits", Value: 2},
							{Key: "maxExpansions", Value: 100},
						}},
					}}},
				}},
				{Key: "should", Value: bson.A{
					bson.D{{Key: "text", Value: bson.D{
						{Key: "path", Value: "id"},
						{Key: "query", Value: term},
						{Key: "score", Value: boost},
					}}},
					bson.D{{Key: "text", Value: bson.D{
						{Key: "path", Value: "gem5_versions"},
						{Key: "query", Value: boostedGem5Version},
						{Key: "score", Value: boost},
					}}},
				}},
			}},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "score", Value: bson.D{{Key: "$meta", Value: "searchScore"}}},
		}}},
	}
}

// filterStages translates the filter expression into one $match stage:
// a conjunction of per-field $in disjunctions. Tag values match
// case-insensitively via anchored regexes; category, architecture, and
// gem5_versions match exactly as stored. $in on an array field matches
// documents whose array contains any accepted value.
func filterStages(expr filter.Expression) mongo.Pipeline {
	if expr.IsEmpty() {
		return nil
	}

	conds := bson.A{}
	for _, f := range expr.Fields() {
		accepted := bson.A{}
		for _, v := range expr.Values(f) {
			if f == filter.FieldTags {
				accepted = append(accepted, primitive.Regex{
					Pattern: "^" + regexp.QuoteMeta(v) + "$",
					Options: "i",
				})
			} else {
				accepted = append(accepted, v)
			}
		}
		conds = append(conds, bson.D{{Key: f, Value: bson.D{{Key: "$in", Value: accepted}}}})
	}

	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "$and", Value: conds}}}},
	}
}

// latestVersionStages dedupes the matched set to one document per id and
// tags it with the id's maximum resource_version. Version strings are split
// into integer arrays so "10.0.0" orders above "9.0.0".
func latestVersionStages() mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "resource_version_parts", Value: bson.D{
				{Key: "$map", Value: bson.D{
					{Key: "input", Value: bson.D{{Key: "$split", Value: bson.A{"$resource_version", "."}}}},
					{Key: "as", Value: "item"},
					{Key: "in", Value: bson.D{{Key: "$toInt", Value: "$$item"}}},
				}},
			}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "id", Value: 1},
			{Key: "resource_version_parts.0", Value: -1},
			{Key: "resource_version_parts.1", Value: -1},
			{Key: "resource_version_parts.2", Value: -1},
			{Key: "resource_version_parts.3", Value: -1},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$id"},
			{Key: "latest_version", Value: bson.D{{Key: "$first", Value: "$resource_version"}}},
			{Key: "document", Value: bson.D{{Key: "$first", Value: "$$ROOT"}}},
		}}},
		bson.D{{Key: "$replaceRoot", Value: bson.D{
			{Key: "newRoot", Value: bson.D{
				{Key: "$mergeObjects", Value: bson.A{
					"$document",
					bson.D{
						{Key: "id", Value: "$_id"},
						{Key: "latest_version", Value: "$latest_version"},
					},
				}},
			}},
		}}},
	}
}

// sortStages orders the matched set. Every mode carries an id tie-break so
// two identical queries against an unchanged collection return identical
// orderings. Relevance without a text term has no score and falls back to
// id ascending.
func sortStages(key sortby.Key, hasTerm bool) mongo.Pipeline {
	var spec bson.D
	switch key {
	case sortby.Date:
		spec = bson.D{{Key: "date", Value: -1}, {Key: "id", Value: 1}}
	case sortby.Name, sortby.IDAsc:
		spec = bson.D{{Key: "id", Value: 1}}
	case sortby.IDDesc:
		spec = bson.D{{Key: "id", Value: -1}}
	case sortby.Version:
		spec = bson.D{{Key: "ver_latest", Value: -1}, {Key: "id", Value: 1}}
	default: // relevance
		if hasTerm {
			spec = bson.D{{Key: "score", Value: -1}, {Key: "id", Value: 1}}
		} else {
			spec = bson.D{{Key: "id", Value: 1}}
		}
	}

	return mongo.Pipeline{
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "ver_latest", Value: bson.D{
				{Key: "$max", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$gem5_versions", bson.A{}}}}},
			}},
		}}},
		bson.D{{Key: "$sort", Value: spec}},
	}
}
