package templates

import (
	"context"
	"errors"
	"testing"
)

func mustCreate(t *testing.T, svc *Service, name, contentType, industry string) Template {
	t.Helper()
	tpl, err := svc.Create(context.Background(), CreateParams{
		Name:               name,
		SystemPrompt:       "system",
		UserPromptTemplate: "Write about {topic}.",
		ContentType:        contentType,
		Industry:           industry,
	})
	if err != nil {
		t.Fatalf("Create(%s): %v", name, err)
	}
	return tpl
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	mustCreate(t, svc, "finance-blog", "blog", "finance")

	_, err := svc.Create(context.Background(), CreateParams{
		Name:               "Finance-Blog",
		SystemPrompt:       "s",
		UserPromptTemplate: "u",
		ContentType:        "blog",
	})
	if !errors.Is(err, ErrNameTaken) {
		t.Fatalf("err = %v, want ErrNameTaken", err)
	}
}

func TestBestTemplatePrefersIndustryMatch(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	generic := mustCreate(t, svc, "generic-blog", "blog", "")
	finance := mustCreate(t, svc, "finance-blog", "blog", "finance")

	got, err := svc.BestTemplate(context.Background(), "blog", "finance")
	if err != nil {
		t.Fatalf("BestTemplate: %v", err)
	}
	if got.ID != finance.ID {
		t.Fatalf("got %s, want industry match %s", got.Name, finance.Name)
	}

	got, err = svc.BestTemplate(context.Background(), "blog", "health")
	if err != nil {
		t.Fatalf("BestTemplate fallback: %v", err)
	}
	if got.ID != generic.ID {
		t.Fatalf("got %s, want generic fallback %s", got.Name, generic.Name)
	}

	if _, err := svc.BestTemplate(context.Background(), "whitepaper", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateRenameKeepsUniqueness(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	a := mustCreate(t, svc, "alpha", "blog", "")
	mustCreate(t, svc, "beta", "blog", "")

	newName := "beta"
	if _, err := svc.Update(context.Background(), a.ID, UpdateParams{Name: &newName}); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("err = %v, want ErrNameTaken", err)
	}

	fresh := "gamma"
	updated, err := svc.Update(context.Background(), a.ID, UpdateParams{Name: &fresh})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "gamma" {
		t.Fatalf("name = %q", updated.Name)
	}
	if _, err := svc.GetByName(context.Background(), "alpha"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("old name should be released, err = %v", err)
	}
}
