package service

import (
	"errors"
	"testing"
	"time"

	"github.com/rahul-nakum14/formcraft/internal/model"
	"github.com/rahul-nakum14/formcraft/internal/repository"
)

func newAnalyticsService(form *model.Form) (*AnalyticsService, *fakeViewRepo, *fakeSubmissionRepo) {
	viewRepo := &fakeViewRepo{}
	submissionRepo := &fakeSubmissionRepo{}
	svc := NewAnalyticsService(newFakeFormRepo(form), submissionRepo, viewRepo)
	return svc, viewRepo, submissionRepo
}

func TestConversionRate(t *testing.T) {
	cases := []struct {
		views, submissions int
		want               float64
	}{
		{0, 0, 0},
		{0, 5, 0}, // zero views never divides
		{100, 25, 25},
		{4, 1, 25},
		{3, 3, 100},
	}

	for _, c := range cases {
		if got := ConversionRate(c.views, c.submissions); got != c.want {
			t.Fatalf("ConversionRate(%d, %d) = %v, want %v", c.views, c.submissions, got, c.want)
		}
	}
}

func TestDeviceFromUserAgent(t *testing.T) {
	cases := []struct {
		userAgent string
		want      string
	}{
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64)", "Desktop"},
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", "Mobile"},
		{"Mozilla/5.0 (Linux; Android 14; Pixel 8) Mobile Safari", "Mobile"},
		{"Mozilla/5.0 (iPad; CPU OS 17_0)", "Mobile"},
		{"BlackBerry9700", "Mobile"},
		{"Mozilla/5.0 (compatible; MSIE 9.0; IEMobile/9.0)", "Mobile"},
		{"", "Desktop"},
	}

	for _, c := range cases {
		if got := DeviceFromUserAgent(c.userAgent); got != c.want {
			t.Fatalf("DeviceFromUserAgent(%q) = %s, want %s", c.userAgent, got, c.want)
		}
	}
}

func TestReferrerLabel(t *testing.T) {
	cases := []struct {
		referrer string
		want     string
	}{
		{"", "Direct"},
		{"https://google.com/search?q=forms", "google.com"},
		{"http://news.ycombinator.com", "news.ycombinator.com"},
		{"not a url", "Direct"},
		{"/relative/path", "Direct"},
	}

	for _, c := range cases {
		if got := ReferrerLabel(c.referrer); got != c.want {
			t.Fatalf("ReferrerLabel(%q) = %s, want %s", c.referrer, got, c.want)
		}
	}
}

func TestRecordView(t *testing.T) {
	form := publishedForm()
	svc, viewRepo, _ := newAnalyticsService(form)

	err := svc.RecordView(form.ID, "1.2.3.4", "agent", "https://ref.example.com", "DE")
	if err != nil {
		t.Fatalf("RecordView: %v", err)
	}

	if len(viewRepo.views) != 1 {
		t.Fatalf("%d view records", len(viewRepo.views))
	}
	if form.Views != 1 {
		t.Fatalf("form views = %d, want 1", form.Views)
	}
}

func TestRecordViewUnpublished(t *testing.T) {
	form := publishedForm()
	form.Status = model.FormStatusDraft
	svc, viewRepo, _ := newAnalyticsService(form)

	err := svc.RecordView(form.ID, "1.2.3.4", "agent", "", "")
	if !errors.Is(err, ErrFormNotPublished) {
		t.Fatalf("got %v, want ErrFormNotPublished", err)
	}
	if len(viewRepo.views) != 0 {
		t.Fatal("view recorded for draft form")
	}
}

func TestFormAnalyticsExactCounts(t *testing.T) {
	form := publishedForm()
	svc, viewRepo, submissionRepo := newAnalyticsService(form)

	day := func(offset int, hour int) time.Time {
		base := truncateDay(time.Now()).AddDate(0, 0, -offset)
		return base.Add(time.Duration(hour) * time.Hour)
	}

	viewRepo.views = []*model.ViewRecord{
		{FormID: form.ID, UserAgent: "iPhone", Referrer: "https://google.com/x", Country: "DE", CreatedAt: day(2, 9)},
		{FormID: form.ID, UserAgent: "Windows", Country: "", CreatedAt: day(2, 15)},
		{FormID: form.ID, UserAgent: "Android Mobile", Referrer: "https://google.com/y", Country: "DE", CreatedAt: day(0, 8)},
		{FormID: form.ID, UserAgent: "Windows", CreatedAt: day(0, 12)},
	}
	submissionRepo.submissions = []*model.Submission{
		{FormID: form.ID, CreatedAt: day(2, 10)},
		{FormID: form.ID, CreatedAt: day(0, 9)},
	}

	start := time.Now().AddDate(0, 0, -2)
	analytics, err := svc.FormAnalytics(form.UserID, form.ID, start, time.Now())
	if err != nil {
		t.Fatalf("FormAnalytics: %v", err)
	}

	summary := analytics.Summary
	if summary.TotalViews != 4 || summary.TotalSubmissions != 2 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.ConversionRate != 50 {
		t.Fatalf("conversion = %v, want 50", summary.ConversionRate)
	}
	if summary.Devices["Mobile"] != 2 || summary.Devices["Desktop"] != 2 {
		t.Fatalf("devices = %+v", summary.Devices)
	}
	if summary.Countries["DE"] != 2 || summary.Countries["Unknown"] != 2 {
		t.Fatalf("countries = %+v", summary.Countries)
	}
	if summary.Referrers["google.com"] != 2 || summary.Referrers["Direct"] != 2 {
		t.Fatalf("referrers = %+v", summary.Referrers)
	}

	if len(analytics.Daily) != 3 {
		t.Fatalf("%d daily buckets, want 3", len(analytics.Daily))
	}
	if analytics.Daily[0].Views != 2 || analytics.Daily[0].Submissions != 1 {
		t.Fatalf("first bucket = %+v", analytics.Daily[0])
	}
	if analytics.Daily[1].Views != 0 || analytics.Daily[1].Submissions != 0 {
		t.Fatalf("middle bucket = %+v", analytics.Daily[1])
	}
	if analytics.Daily[2].Views != 2 || analytics.Daily[2].Submissions != 1 {
		t.Fatalf("last bucket = %+v", analytics.Daily[2])
	}

	// Buckets are consecutive calendar days
	for i := 1; i < len(analytics.Daily); i++ {
		prev, _ := time.Parse("2006-01-02", analytics.Daily[i-1].Date)
		cur, _ := time.Parse("2006-01-02", analytics.Daily[i].Date)
		if cur.Sub(prev) != 24*time.Hour {
			t.Fatalf("buckets not consecutive: %s then %s", analytics.Daily[i-1].Date, analytics.Daily[i].Date)
		}
	}
}

func TestFormAnalyticsInvertedRange(t *testing.T) {
	form := publishedForm()
	svc, _, _ := newAnalyticsService(form)

	analytics, err := svc.FormAnalytics(form.UserID, form.ID, time.Now(), time.Now().AddDate(0, 0, -7))
	if err != nil {
		t.Fatalf("inverted range should not error: %v", err)
	}
	if analytics.Summary.TotalViews != 0 || len(analytics.Daily) != 0 {
		t.Fatalf("inverted range produced data: %+v", analytics)
	}
}

func TestFormAnalyticsOwnership(t *testing.T) {
	form := publishedForm()
	svc, _, _ := newAnalyticsService(form)

	_, err := svc.FormAnalytics("someone-else", form.ID, time.Now().AddDate(0, 0, -7), time.Now())
	if !errors.Is(err, repository.ErrFormNotFound) {
		t.Fatalf("got %v, want ErrFormNotFound for non-owner", err)
	}
}

func TestFormAnalyticsEstimatedViews(t *testing.T) {
	// Lifetime counter set but no view records: daily views are estimated
	form := publishedForm()
	form.Views = 100
	form.CreatedAt = time.Now().AddDate(0, 0, -9) // 10 days of life
	svc, _, _ := newAnalyticsService(form)

	analytics, err := svc.FormAnalytics(form.UserID, form.ID, time.Now().AddDate(0, 0, -9), time.Now())
	if err != nil {
		t.Fatalf("FormAnalytics: %v", err)
	}

	if len(analytics.Daily) != 10 {
		t.Fatalf("%d buckets, want 10", len(analytics.Daily))
	}

	// perDay is 10; jitter keeps each estimate within [8, 12]
	for _, bucket := range analytics.Daily {
		if bucket.Views < 8 || bucket.Views > 12 {
			t.Fatalf("estimated views %d outside jitter bounds", bucket.Views)
		}
		if bucket.Submissions != 0 {
			t.Fatalf("submissions are never estimated: %+v", bucket)
		}
	}

	// Summary counts real records only
	if analytics.Summary.TotalViews != 0 {
		t.Fatalf("summary views = %d, want 0", analytics.Summary.TotalViews)
	}
}

func TestFormAnalyticsNoEstimateWithRecords(t *testing.T) {
	form := publishedForm()
	form.Views = 1000
	svc, viewRepo, _ := newAnalyticsService(form)
	viewRepo.views = []*model.ViewRecord{{FormID: form.ID, CreatedAt: time.Now()}}

	analytics, err := svc.FormAnalytics(form.UserID, form.ID, time.Now(), time.Now())
	if err != nil {
		t.Fatalf("FormAnalytics: %v", err)
	}
	if analytics.Daily[0].Views != 1 {
		t.Fatalf("views = %d, want exact count 1", analytics.Daily[0].Views)
	}
}

func TestDashboardStats(t *testing.T) {
	published := publishedForm()
	published.Views = 10
	draft := &model.Form{ID: "form-2", UserID: published.UserID, Status: model.FormStatusDraft, Views: 3}

	viewRepo := &fakeViewRepo{}
	submissionRepo := &fakeSubmissionRepo{submissions: []*model.Submission{
		{FormID: published.ID}, {FormID: published.ID},
	}}
	svc := NewAnalyticsService(newFakeFormRepo(published, draft), submissionRepo, viewRepo)

	stats, err := svc.DashboardStats(published.UserID)
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}
	if stats.TotalForms != 2 || stats.ActiveForms != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.TotalViews != 13 || stats.TotalSubmissions != 2 {
		t.Fatalf("stats = %+v", stats)
	}
}
