package core

import (
	"errors"
	"testing"
)

func TestRegisterAndLookup(t *testing.T) {
	Register("test-repo", "https://example.com/repo/")

	r, ok := LookupRepository("test-repo")
	if !ok {
		t.Fatal("expected test-repo to be registered")
	}
	if r.URL != "https://example.com/repo/" || r.ID != "test-repo" {
		t.Errorf("unexpected repository %+v", r)
	}

	if _, ok := LookupRepository("does-not-exist"); ok {
		t.Error("unexpected repository for unknown id")
	}

	repos := KnownRepositories()
	for i := 1; i < len(repos); i++ {
		if repos[i-1].ID > repos[i].ID {
			t.Errorf("KnownRepositories not sorted: %q before %q", repos[i-1].ID, repos[i].ID)
		}
	}
}

func TestResolveRepositories(t *testing.T) {
	Register("resolve-a", "https://a.example.com/maven2/")

	repos, err := ResolveRepositories([]string{
		"resolve-a",
		"mirror=https://mirror.example.com/maven/",
		" https://repo.example.org/releases ",
		"",
	})
	if err != nil {
		t.Fatalf("ResolveRepositories failed: %v", err)
	}

	want := []RemoteRepository{
		{ID: "resolve-a", URL: "https://a.example.com/maven2/"},
		{ID: "mirror", URL: "https://mirror.example.com/maven/"},
		{ID: "repo.example.org", URL: "https://repo.example.org/releases"},
	}
	if len(repos) != len(want) {
		t.Fatalf("got %d repositories, want %d: %+v", len(repos), len(want), repos)
	}
	for i := range want {
		if repos[i] != want[i] {
			t.Errorf("repos[%d] = %+v, want %+v", i, repos[i], want[i])
		}
	}
}

func TestResolveRepositoriesUnknown(t *testing.T) {
	_, err := ResolveRepositories([]string{"nope"})
	var unknown *UnknownRepositoryError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownRepositoryError, got %v", err)
	}
	if unknown.ID != "nope" {
		t.Errorf("ID = %q, want nope", unknown.ID)
	}
}
