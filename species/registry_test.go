package species

import (
	"reflect"
	"testing"
)

func TestRegistryOrder(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{Tertiary, Primary, "0badf00d", Secondary} {
		r.Insert(id, Default(10, Color{}))
	}

	want := []string{"0badf00d", Primary, Secondary, Tertiary}
	if got := r.IDs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("IDs() = %v, want %v", got, want)
	}

	var visited []string
	r.Each(func(id string, _ *Config) { visited = append(visited, id) })
	if !reflect.DeepEqual(visited, want) {
		t.Errorf("Each visited %v, want %v", visited, want)
	}
}

func TestRegistryInsertReplaces(t *testing.T) {
	r := NewRegistry()
	r.Insert(Primary, Default(40, Color{}))
	r.Insert(Primary, Default(5, Color{}))

	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	cfg, ok := r.Get(Primary)
	if !ok || cfg.SpawnWeight != 5 {
		t.Errorf("Get(primary) = %+v, %v; want weight 5", cfg, ok)
	}
}

func TestRegistryGetCopies(t *testing.T) {
	r := NewRegistry()
	r.Insert(Primary, Default(40, Color{}))

	cfg, _ := r.Get(Primary)
	cfg.MaxSpeed = 99
	if stored, _ := r.Get(Primary); stored.MaxSpeed == 99 {
		t.Error("mutating a Get result changed the registry")
	}

	p, _ := r.Lookup(Primary)
	p.MaxSpeed = 7
	if stored, _ := r.Get(Primary); stored.MaxSpeed != 7 {
		t.Errorf("Lookup pointer write not visible: max speed = %v", stored.MaxSpeed)
	}
}

func TestRegistrySetRemove(t *testing.T) {
	r := NewRegistry()
	r.Insert(Primary, Default(40, Color{}))
	r.Insert(Secondary, Default(30, Color{}))

	if r.Set("ghost", Config{}) {
		t.Error("Set on unknown id returned true")
	}
	if !r.Set(Secondary, Default(1, Color{})) {
		t.Error("Set on known id returned false")
	}

	if !r.Remove(Primary) {
		t.Fatal("Remove(primary) returned false")
	}
	if r.Remove(Primary) {
		t.Error("second Remove(primary) returned true")
	}
	if r.Has(Primary) {
		t.Error("primary still registered")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
	if got := r.IDs(); !reflect.DeepEqual(got, []string{Secondary}) {
		t.Errorf("IDs() = %v, want [secondary]", got)
	}
}
