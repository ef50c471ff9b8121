package contact

import (
	"context"
	"errors"
	"testing"
	"time"
)

func sampleInput() CreateInput {
	return CreateInput{
		FirstName:      "Lesia",
		LastName:       "Ukrainka",
		Email:          "lesia@example.com",
		PhoneNumber:    "+380501112233",
		Birthday:       NewDate(1990, time.February, 25),
		AdditionalInfo: "poet",
	}
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}

	fetched, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched != created {
		t.Fatalf("round trip mismatch: %+v vs %+v", fetched, created)
	}
}

func TestCreateRejectsMalformedEmail(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	in := sampleInput()
	in.Email = "not-an-email"

	if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestCreateRejectsMissingFields(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	in := sampleInput()
	in.FirstName = ""

	if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestEmptyUpdateLeavesRecordUnchanged(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, Update{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated != created {
		t.Fatalf("empty update changed record: %+v vs %+v", updated, created)
	}
}

func TestPartialUpdateTouchesOnlySuppliedFields(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	phone := "+380991234567"
	cleared := ""
	updated, err := svc.Update(ctx, created.ID, Update{PhoneNumber: &phone, AdditionalInfo: &cleared})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.PhoneNumber != phone {
		t.Fatalf("expected phone %s, got %s", phone, updated.PhoneNumber)
	}
	if updated.AdditionalInfo != "" {
		t.Fatalf("expected additional_info cleared, got %q", updated.AdditionalInfo)
	}
	if updated.FirstName != created.FirstName || updated.LastName != created.LastName ||
		updated.Email != created.Email || updated.Birthday != created.Birthday {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestUpdateUnknownIDReturnsNotFound(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	name := "Nobody"
	if _, err := svc.Update(context.Background(), 42, Update{FirstName: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteSemantics(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := svc.Delete(ctx, created.ID)
	if err != nil || !deleted {
		t.Fatalf("expected first delete to report true, got %v %v", deleted, err)
	}

	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	deleted, err = svc.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if deleted {
		t.Fatal("expected second delete to report false")
	}
}

func TestListPagination(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		in := sampleInput()
		in.FirstName = string(rune('A' + i))
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	page, err := svc.List(ctx, 1, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 2 || page[0].ID != 2 || page[1].ID != 3 {
		t.Fatalf("unexpected page: %+v", page)
	}

	empty, err := svc.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("list limit 0: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty page for limit 0, got %d rows", len(empty))
	}

	if _, err := svc.List(ctx, -1, 10); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for negative skip, got %v", err)
	}
}

func TestSearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	first := sampleInput()
	byLast := sampleInput()
	byLast.FirstName = "Taras"
	byLast.LastName = "Shevchenko"
	byLast.Email = "kobzar@example.com"
	byEmail := sampleInput()
	byEmail.FirstName = "Ivan"
	byEmail.LastName = "Franko"
	byEmail.Email = "ivan.LESIA.fan@example.com"

	for _, in := range []CreateInput{first, byLast, byEmail} {
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	matches, err := svc.Search(ctx, "LeSiA")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches on first name and email, got %d", len(matches))
	}

	matches, err = svc.Search(ctx, "shevchen")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 1 || matches[0].LastName != "Shevchenko" {
		t.Fatalf("expected last-name match, got %+v", matches)
	}
}

func TestUpcomingBirthdaysAcrossYearBoundary(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo).WithClock(func() time.Time {
		return time.Date(2024, time.December, 30, 10, 0, 0, 0, time.UTC)
	})
	ctx := context.Background()

	inside := sampleInput()
	inside.FirstName = "Inside"
	inside.Birthday = NewDate(1985, time.January, 2)
	outside := sampleInput()
	outside.FirstName = "Outside"
	outside.Birthday = NewDate(1985, time.January, 8)
	edge := sampleInput()
	edge.FirstName = "Today"
	edge.Birthday = NewDate(2001, time.December, 30)

	for _, in := range []CreateInput{inside, outside, edge} {
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	upcoming, err := svc.UpcomingBirthdays(ctx)
	if err != nil {
		t.Fatalf("birthdays: %v", err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("expected 2 upcoming birthdays, got %d: %+v", len(upcoming), upcoming)
	}
	for _, c := range upcoming {
		if c.FirstName == "Outside" {
			t.Fatal("Jan 8 must fall outside the Dec 30 window")
		}
	}
}

func TestUpcomingBirthdaysIncludesLeapDay(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo).WithClock(func() time.Time {
		return time.Date(2024, time.February, 26, 0, 0, 0, 0, time.UTC)
	})
	ctx := context.Background()

	leap := sampleInput()
	leap.FirstName = "Leap"
	leap.Birthday = NewDate(1996, time.February, 29)
	if _, err := svc.Create(ctx, leap); err != nil {
		t.Fatalf("create: %v", err)
	}

	upcoming, err := svc.UpcomingBirthdays(ctx)
	if err != nil {
		t.Fatalf("birthdays: %v", err)
	}
	if len(upcoming) != 1 {
		t.Fatalf("expected Feb 29 birthday inside window walked through a leap year, got %d", len(upcoming))
	}
}
