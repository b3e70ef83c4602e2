// Package dashboard issues the cross-entity read-only aggregation queries
// behind the admin dashboard: entity counts, monthly activity buckets, a
// project category histogram and an interleaved recent-activity feed.
package dashboard

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/db/models"
)

const (
	// MonthlyWindow is how many months the monthly stats cover.
	MonthlyWindow = 6

	// CategoryLimit caps the category histogram size.
	CategoryLimit = 10

	// activityPerEntity is how many recent rows each entity contributes to
	// the interleaved feed before the global limit applies.
	activityPerEntity = 3

	// DefaultActivityLimit is the default size of the recent-activity feed.
	DefaultActivityLimit = 10

	// revenuePerProject is the flat per-project revenue estimate used by the
	// performance chart until real billing data exists.
	revenuePerProject = 50

	// defaultMonthlyRevenue is reported for months without any project.
	defaultMonthlyRevenue = 100

	// defaultSatisfaction is reported for months without any rated
	// testimonial.
	defaultSatisfaction = 4.5
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// Stats holds one total row count per entity.
type Stats struct {
	Services     int64 `json:"services"`
	Projects     int64 `json:"projects"`
	Posts        int64 `json:"posts"`
	Testimonials int64 `json:"testimonials"`
	Contacts     int64 `json:"contacts"`
	Users        int64 `json:"users"`
	HeroSlides   int64 `json:"heroSlides"`
}

// MonthlyStat is one month's creation counts across the content entities.
type MonthlyStat struct {
	Month    string `json:"month"`
	Services int64  `json:"services"`
	Projects int64  `json:"projects"`
	Posts    int64  `json:"posts"`
	Contacts int64  `json:"contacts"`
}

// PerformanceStat is one month's estimated revenue and average customer
// satisfaction.
type PerformanceStat struct {
	Month        string  `json:"month"`
	Revenue      int64   `json:"revenue"`
	Satisfaction float64 `json:"satisfaction"`
}

// CategoryStat is one bucket of the project category histogram.
type CategoryStat struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// Activity is one entry of the recent-activity feed.
type Activity struct {
	ID      int       `json:"id"`
	Type    string    `json:"type"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// GetStats counts all seven entity tables. The counts are issued
// concurrently and the call returns once all of them finish.
func GetStats(db *gorm.DB) (*Stats, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var (
		stats Stats
		g     errgroup.Group
	)

	count := func(model any, dst *int64) func() error {
		return func() error {
			return db.Model(model).Count(dst).Error
		}
	}

	g.Go(count(&models.Service{}, &stats.Services))
	g.Go(count(&models.Project{}, &stats.Projects))
	g.Go(count(&models.Post{}, &stats.Posts))
	g.Go(count(&models.Testimonial{}, &stats.Testimonials))
	g.Go(count(&models.Contact{}, &stats.Contacts))
	g.Go(count(&models.User{}, &stats.Users))
	g.Go(count(&models.HeroSlide{}, &stats.HeroSlides))

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &stats, nil
}

// GetMonthlyStats buckets creations of services, projects, posts and
// contacts into the last MonthlyWindow calendar months. Bucketing happens
// in Go over scanned timestamps so the same query runs on every engine.
func GetMonthlyStats(db *gorm.DB) ([]MonthlyStat, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	now := time.Now()
	start := monthStart(now).AddDate(0, -(MonthlyWindow - 1), 0)

	stats := make([]MonthlyStat, MonthlyWindow)
	for i := range stats {
		stats[i].Month = start.AddDate(0, i, 0).Format("Jan")
	}

	fill := func(model any, pick func(*MonthlyStat) *int64) error {
		var createdAt []time.Time
		result := db.Model(model).
			Where("created_at >= ?", start).
			Pluck("created_at", &createdAt)
		if result.Error != nil {
			return result.Error
		}

		for _, ts := range createdAt {
			idx := monthsBetween(start, monthStart(ts))
			if idx < 0 || idx >= MonthlyWindow {
				continue
			}

			*pick(&stats[idx])++
		}

		return nil
	}

	var g errgroup.Group
	g.Go(func() error { return fill(&models.Service{}, func(s *MonthlyStat) *int64 { return &s.Services }) })
	g.Go(func() error { return fill(&models.Project{}, func(s *MonthlyStat) *int64 { return &s.Projects }) })
	g.Go(func() error { return fill(&models.Post{}, func(s *MonthlyStat) *int64 { return &s.Posts }) })
	g.Go(func() error { return fill(&models.Contact{}, func(s *MonthlyStat) *int64 { return &s.Contacts }) })

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return stats, nil
}

// GetPerformanceStats reports per-month revenue estimates and average
// testimonial ratings over the last MonthlyWindow months. Revenue is a flat
// estimate per created project; months without data fall back to the default
// figures instead of zero.
func GetPerformanceStats(db *gorm.DB) ([]PerformanceStat, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	now := time.Now()
	start := monthStart(now).AddDate(0, -(MonthlyWindow - 1), 0)

	stats := make([]PerformanceStat, MonthlyWindow)
	for i := range stats {
		stats[i].Month = start.AddDate(0, i, 0).Format("Jan")
	}

	var (
		g             errgroup.Group
		projectCounts [MonthlyWindow]int64
		ratingSums    [MonthlyWindow]float64
		ratingCounts  [MonthlyWindow]int64
	)

	g.Go(func() error {
		var createdAt []time.Time
		result := db.Model(&models.Project{}).
			Where("created_at >= ?", start).
			Pluck("created_at", &createdAt)
		if result.Error != nil {
			return result.Error
		}

		for _, ts := range createdAt {
			if idx := monthsBetween(start, monthStart(ts)); idx >= 0 && idx < MonthlyWindow {
				projectCounts[idx]++
			}
		}

		return nil
	})

	g.Go(func() error {
		var rows []models.Testimonial
		result := db.Select("rating", "created_at").
			Where("created_at >= ?", start).
			Find(&rows)
		if result.Error != nil {
			return result.Error
		}

		for i := range rows {
			if idx := monthsBetween(start, monthStart(rows[i].CreatedAt)); idx >= 0 && idx < MonthlyWindow {
				ratingSums[idx] += float64(rows[i].Rating)
				ratingCounts[idx]++
			}
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range stats {
		stats[i].Revenue = defaultMonthlyRevenue
		if projectCounts[i] > 0 {
			stats[i].Revenue = projectCounts[i] * revenuePerProject
		}

		stats[i].Satisfaction = defaultSatisfaction
		if ratingCounts[i] > 0 {
			avg := ratingSums[i] / float64(ratingCounts[i])
			stats[i].Satisfaction = math.Round(avg*10) / 10
		}
	}

	return stats, nil
}

// GetCategoryStats returns the top project categories by project count.
func GetCategoryStats(db *gorm.DB) ([]CategoryStat, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var stats []CategoryStat
	result := db.Model(&models.Project{}).
		Select("category AS name, COUNT(*) AS value").
		Where("category <> ''").
		Group("category").
		Order("value DESC").
		Limit(CategoryLimit).
		Scan(&stats)
	if result.Error != nil {
		return nil, result.Error
	}

	return stats, nil
}

// GetRecentActivities interleaves the most recent contacts, projects,
// published posts and testimonials into one feed sorted by creation time
// descending.
func GetRecentActivities(db *gorm.DB, limit int) ([]Activity, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if limit < 1 {
		limit = DefaultActivityLimit
	}

	var activities []Activity

	var contacts []models.Contact
	if err := db.Order("created_at DESC").Limit(activityPerEntity).Find(&contacts).Error; err != nil {
		return nil, err
	}

	for i := range contacts {
		activities = append(activities, Activity{
			Type:    "contact",
			Message: fmt.Sprintf("Liên hệ mới từ %s", contacts[i].Name),
			Time:    contacts[i].CreatedAt,
		})
	}

	var projects []models.Project
	if err := db.Order("created_at DESC").Limit(activityPerEntity).Find(&projects).Error; err != nil {
		return nil, err
	}

	for i := range projects {
		activities = append(activities, Activity{
			Type:    "project",
			Message: fmt.Sprintf("Dự án %q được tạo", projects[i].Title),
			Time:    projects[i].CreatedAt,
		})
	}

	var posts []models.Post
	if err := db.Where("is_published = ?", true).
		Order("created_at DESC").
		Limit(activityPerEntity).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	for i := range posts {
		activities = append(activities, Activity{
			Type:    "post",
			Message: fmt.Sprintf("Bài viết %q được xuất bản", posts[i].Title),
			Time:    posts[i].CreatedAt,
		})
	}

	var testimonials []models.Testimonial
	if err := db.Order("created_at DESC").Limit(activityPerEntity).Find(&testimonials).Error; err != nil {
		return nil, err
	}

	for i := range testimonials {
		activities = append(activities, Activity{
			Type:    "testimonial",
			Message: fmt.Sprintf("Đánh giá %d sao từ %s", testimonials[i].Rating, testimonials[i].Author),
			Time:    testimonials[i].CreatedAt,
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Time.After(activities[j].Time)
	})

	if len(activities) > limit {
		activities = activities[:limit]
	}

	for i := range activities {
		activities[i].ID = i + 1
	}

	return activities, nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}
