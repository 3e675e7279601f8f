package workload

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestDependentsPipeline(t *testing.T) {
	p := DependentsPipeline("x86-ubuntu-18.04-img")

	var ops []string
	for _, stage := range p {
		ops = append(ops, stage[0].Key)
	}
	want := []string{"$match", "$addFields", "$unwind", "$match", "$group", "$sort"}
	if len(ops) != len(want) {
		t.Fatalf("stage ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("stage %d = %s, want %s", i, ops[i], want[i])
		}
	}

	// Scoped to workload documents only.
	first := p[0][0].Value.(bson.D)
	if first[0].Key != "category" || first[0].Value != "workload" {
		t.Errorf("category match = %v", first)
	}

	// Matches dependency-map values against the queried id.
	edge := p[3][0].Value.(bson.D)
	if edge[0].Key != "resources.v" || edge[0].Value != "x86-ubuntu-18.04-img" {
		t.Errorf("edge match = %v", edge)
	}

	// Distinct workload ids, deterministic order.
	group := p[4][0].Value.(bson.D)
	if group[0].Key != "_id" || group[0].Value != "$id" {
		t.Errorf("group = %v", group)
	}
}
