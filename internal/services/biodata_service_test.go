package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/matrimony/backend/internal/models"
)

func newTestDirectory(t *testing.T) (*BiodataService, *UserService) {
	t.Helper()

	users, err := NewUserService(nil)
	if err != nil {
		t.Fatalf("user service: unexpected error: %v", err)
	}
	biodatas, err := NewBiodataService(nil, users)
	if err != nil {
		t.Fatalf("biodata service: unexpected error: %v", err)
	}
	return biodatas, users
}

func submitTestBiodata(t *testing.T, s *BiodataService, email, biodataType string, age int, division string) int {
	t.Helper()

	res, err := s.Submit(context.Background(), &models.SubmitBiodataRequest{
		BiodataType:       biodataType,
		Name:              "Member " + email,
		ContactEmail:      email,
		Age:               age,
		PermanentDivision: division,
		Occupation:        "Engineer",
		MobileNumber:      "01700000000",
	})
	if err != nil {
		t.Fatalf("submit %s: unexpected error: %v", email, err)
	}
	if !res.Inserted {
		t.Fatalf("submit %s: expected insert, got duplicate", email)
	}
	return res.BiodataID
}

func TestSubmitAssignsSequentialIDs(t *testing.T) {
	s, _ := newTestDirectory(t)
	ctx := context.Background()

	id1 := submitTestBiodata(t, s, "a@x.com", models.BiodataTypeFemale, 24, "Dhaka")
	if id1 != 1 {
		t.Fatalf("first submission: expected id 1, got %d", id1)
	}
	id2 := submitTestBiodata(t, s, "b@x.com", models.BiodataTypeMale, 28, "Sylhet")
	if id2 != 2 {
		t.Fatalf("second submission: expected id 2, got %d", id2)
	}

	// Repeat submission for an existing email is a no-op success.
	res, err := s.Submit(ctx, &models.SubmitBiodataRequest{
		BiodataType:  models.BiodataTypeFemale,
		Name:         "Duplicate",
		ContactEmail: "a@x.com",
		Age:          24,
	})
	if err != nil {
		t.Fatalf("duplicate submit: unexpected error: %v", err)
	}
	if res.Inserted {
		t.Fatal("duplicate submit: expected no insert")
	}

	total, _, _, err := s.Counts(ctx)
	if err != nil {
		t.Fatalf("counts: unexpected error: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 stored biodatas, got %d", total)
	}
}

func TestSubmitConcurrentIDsAreUnique(t *testing.T) {
	s, _ := newTestDirectory(t)

	const n = 50
	ids := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := s.Submit(context.Background(), &models.SubmitBiodataRequest{
				BiodataType:  models.BiodataTypeMale,
				Name:         "Concurrent",
				ContactEmail: fmt.Sprintf("user%d@x.com", i),
				Age:          30,
			})
			if err != nil {
				t.Errorf("submit %d: unexpected error: %v", i, err)
				return
			}
			ids <- res.BiodataID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("id %d assigned twice", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d unique ids, got %d", n, len(seen))
	}
}

func TestListFilters(t *testing.T) {
	s, _ := newTestDirectory(t)
	ctx := context.Background()

	submitTestBiodata(t, s, "f1@x.com", models.BiodataTypeFemale, 22, "Dhaka")
	submitTestBiodata(t, s, "f2@x.com", models.BiodataTypeFemale, 27, "Sylhet")
	submitTestBiodata(t, s, "m1@x.com", models.BiodataTypeMale, 25, "Dhaka")
	submitTestBiodata(t, s, "m2@x.com", models.BiodataTypeMale, 35, "Khulna")

	ageMin, ageMax := 23, 30

	cases := []struct {
		name   string
		filter *models.BiodataFilter
		want   []string
	}{
		{"no filter", nil, []string{"f1@x.com", "f2@x.com", "m1@x.com", "m2@x.com"}},
		{"age range", &models.BiodataFilter{AgeMin: &ageMin, AgeMax: &ageMax}, []string{"f2@x.com", "m1@x.com"}},
		{"type", &models.BiodataFilter{BiodataType: models.BiodataTypeFemale}, []string{"f1@x.com", "f2@x.com"}},
		{"division", &models.BiodataFilter{Division: "Dhaka"}, []string{"f1@x.com", "m1@x.com"}},
		{"combined", &models.BiodataFilter{AgeMin: &ageMin, AgeMax: &ageMax, BiodataType: models.BiodataTypeMale, Division: "Dhaka"}, []string{"m1@x.com"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := s.List(ctx, tc.filter, 1, 10)
			if err != nil {
				t.Fatalf("list: unexpected error: %v", err)
			}
			if page.TotalCount != int64(len(tc.want)) {
				t.Fatalf("expected totalCount %d, got %d", len(tc.want), page.TotalCount)
			}
			if len(page.Items) != len(tc.want) {
				t.Fatalf("expected %d items, got %d", len(tc.want), len(page.Items))
			}
			for i, b := range page.Items {
				if b.ContactEmail != tc.want[i] {
					t.Fatalf("item %d: expected %s, got %s", i, tc.want[i], b.ContactEmail)
				}
			}
		})
	}
}

func TestListPagination(t *testing.T) {
	s, _ := newTestDirectory(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		submitTestBiodata(t, s, fmt.Sprintf("p%d@x.com", i), models.BiodataTypeFemale, 25, "Dhaka")
	}

	page, err := s.List(ctx, nil, 2, 6)
	if err != nil {
		t.Fatalf("list: unexpected error: %v", err)
	}
	if len(page.Items) != 4 {
		t.Fatalf("page 2 of 10: expected 4 items, got %d", len(page.Items))
	}
	if page.TotalPages != 2 {
		t.Fatalf("expected 2 total pages, got %d", page.TotalPages)
	}
	if page.CurrentPage != 2 {
		t.Fatalf("expected currentPage 2, got %d", page.CurrentPage)
	}
	if page.TotalCount != 10 {
		t.Fatalf("expected totalCount 10, got %d", page.TotalCount)
	}

	// A page past the end is empty, not an error.
	beyond, err := s.List(ctx, nil, 5, 6)
	if err != nil {
		t.Fatalf("out-of-range list: unexpected error: %v", err)
	}
	if len(beyond.Items) != 0 {
		t.Fatalf("out-of-range page: expected 0 items, got %d", len(beyond.Items))
	}
	if beyond.CurrentPage != 5 {
		t.Fatalf("out-of-range page: expected currentPage 5, got %d", beyond.CurrentPage)
	}

	// Defaults apply to nonsensical inputs.
	defaulted, err := s.List(ctx, nil, 0, 0)
	if err != nil {
		t.Fatalf("defaulted list: unexpected error: %v", err)
	}
	if defaulted.CurrentPage != 1 || len(defaulted.Items) != 6 {
		t.Fatalf("expected page 1 with 6 items, got page %d with %d items",
			defaulted.CurrentPage, len(defaulted.Items))
	}
}

func TestPremiumBlendingIgnoresFilter(t *testing.T) {
	s, users := newTestDirectory(t)
	ctx := context.Background()

	submitTestBiodata(t, s, "prem@x.com", models.BiodataTypeMale, 40, "Khulna")
	submitTestBiodata(t, s, "norm@x.com", models.BiodataTypeFemale, 22, "Dhaka")

	for _, email := range []string{"prem@x.com", "ghost@x.com"} {
		if _, err := users.Create(ctx, &models.RegisterRequest{Email: email}); err != nil {
			t.Fatalf("create user %s: %v", email, err)
		}
		if err := users.SetRole(ctx, email, models.RolePremium); err != nil {
			t.Fatalf("set premium %s: %v", email, err)
		}
	}

	// A filter that matches no premium member must not affect the premium slice.
	page, err := s.List(ctx, &models.BiodataFilter{BiodataType: models.BiodataTypeFemale}, 1, 6)
	if err != nil {
		t.Fatalf("list: unexpected error: %v", err)
	}
	if page.TotalCount != 1 {
		t.Fatalf("expected 1 filtered item, got %d", page.TotalCount)
	}
	if len(page.PremiumItems) != 2 {
		t.Fatalf("expected 2 premium items regardless of filter, got %d", len(page.PremiumItems))
	}

	byEmail := make(map[string]*models.PremiumBiodata)
	for _, p := range page.PremiumItems {
		byEmail[p.Email] = p
	}

	joined, ok := byEmail["prem@x.com"]
	if !ok {
		t.Fatal("premium member with biodata missing from premium slice")
	}
	if joined.BiodataID == 0 || joined.Occupation != "Engineer" {
		t.Fatalf("premium join did not project biodata fields: %+v", joined)
	}

	// A premium account without biodata survives the join with empty fields.
	ghost, ok := byEmail["ghost@x.com"]
	if !ok {
		t.Fatal("premium member without biodata missing from premium slice")
	}
	if ghost.BiodataID != 0 || ghost.Role != models.RolePremium {
		t.Fatalf("expected empty join for ghost, got %+v", ghost)
	}
}

func TestGetSimilar(t *testing.T) {
	s, _ := newTestDirectory(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		submitTestBiodata(t, s, fmt.Sprintf("f%d@x.com", i), models.BiodataTypeFemale, 24, "Dhaka")
	}
	submitTestBiodata(t, s, "a@x.com", models.BiodataTypeFemale, 24, "Dhaka")
	submitTestBiodata(t, s, "m@x.com", models.BiodataTypeMale, 30, "Dhaka")

	similar, err := s.GetSimilar(ctx, models.BiodataTypeFemale, "a@x.com")
	if err != nil {
		t.Fatalf("similar: unexpected error: %v", err)
	}
	if len(similar) != 3 {
		t.Fatalf("expected exactly 3 similar biodatas, got %d", len(similar))
	}
	for _, b := range similar {
		if b.ContactEmail == "a@x.com" {
			t.Fatal("similar results include the excluded email")
		}
		if b.BiodataType != models.BiodataTypeFemale {
			t.Fatalf("similar result has wrong type %s", b.BiodataType)
		}
	}
}

func TestGetByIDAndUpdate(t *testing.T) {
	s, _ := newTestDirectory(t)
	ctx := context.Background()

	id := submitTestBiodata(t, s, "a@x.com", models.BiodataTypeFemale, 24, "Dhaka")

	b, err := s.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: unexpected error: %v", err)
	}
	if b.ContactEmail != "a@x.com" {
		t.Fatalf("expected a@x.com, got %s", b.ContactEmail)
	}

	if _, err := s.GetByID(ctx, 999); err != ErrBiodataNotFound {
		t.Fatalf("expected ErrBiodataNotFound, got %v", err)
	}

	updated, err := s.Update(ctx, "a@x.com", &models.SubmitBiodataRequest{
		BiodataType:       models.BiodataTypeFemale,
		Name:              "Renamed",
		ContactEmail:      "ignored@x.com",
		Age:               25,
		PermanentDivision: "Sylhet",
	})
	if err != nil {
		t.Fatalf("update: unexpected error: %v", err)
	}
	if updated.BiodataID != id {
		t.Fatalf("update changed the id: %d != %d", updated.BiodataID, id)
	}
	if updated.ContactEmail != "a@x.com" {
		t.Fatalf("update changed the email: %s", updated.ContactEmail)
	}
	if updated.Name != "Renamed" || updated.Age != 25 {
		t.Fatalf("update did not apply: %+v", updated)
	}

	if _, err := s.Update(ctx, "nobody@x.com", &models.SubmitBiodataRequest{}); err != ErrBiodataNotFound {
		t.Fatalf("expected ErrBiodataNotFound for unknown email, got %v", err)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{0, 6, 0},
		{1, 6, 1},
		{6, 6, 1},
		{7, 6, 2},
		{10, 6, 2},
		{12, 6, 2},
		{13, 6, 3},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.pageSize); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.pageSize, got, tc.want)
		}
	}
}
