package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jask/campusboard/internal/database/repository"
)

type seedMetric struct {
	title         string
	num           float64
	text          string // used instead of num when set
	prefix        string
	suffix        string
	change, trend string
}

type seedChart struct {
	title  string
	kind   string
	labels []string
	values []float64
}

type seedTable struct {
	title   string
	columns []string
	rows    [][]string
}

type seedDashboard struct {
	role, title, subtitle string
	theme, style          string
	headline              []seedMetric
	stats                 []seedMetric
	charts                []seedChart
	tables                []seedTable
	activities            [][3]string // occurred, body, kind
}

var months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}

var hodTable = seedTable{
	title:   "Heads of Department",
	columns: []string{"Department", "HOD", "Experience", "Students"},
	rows: [][]string{
		{"Computer Science", "Dr. Rajesh Kumar", "15 years", "580"},
		{"Information Technology", "Dr. Priya Sharma", "12 years", "520"},
		{"Mechanical", "Dr. Sunil Gupta", "20 years", "490"},
		{"Civil", "Dr. Meera Shah", "14 years", "410"},
	},
}

var libraryStats = []seedMetric{
	{title: "Total Books", num: 45000},
	{title: "Digital Resources", num: 8500},
	{title: "Active Members", num: 2650},
	{title: "Study Seats", num: 350},
}

var attendanceChart = seedChart{
	title: "Monthly Attendance (%)", kind: "line", labels: months,
	values: []float64{87.5, 89.2, 85.8, 91.3, 88.7, 92.1},
}

// defaultDashboards is the mock data behind every role screen.
var defaultDashboards = []seedDashboard{
	{
		role: "admin", title: "Dashboard Overview", theme: "light", style: "hero",
		subtitle: "Welcome back! Here's a real-time summary of your university.",
		headline: []seedMetric{
			{title: "Total Students", num: 8535, change: "+8.2%", trend: "up"},
			{title: "Faculty & Staff", num: 462, change: "+5.1%", trend: "up"},
			{title: "Annual Revenue", text: "₹13.1 Cr", prefix: "₹", suffix: " Cr", change: "+12.3%", trend: "up"},
			{title: "Colleges", num: 3, change: "Stable", trend: "neutral"},
		},
		stats: []seedMetric{
			{title: "Tuition Fees Pending", num: 0.8, prefix: "₹", suffix: " Cr"},
			{title: "Hostel Fees Pending", num: 0.3, prefix: "₹", suffix: " Cr"},
			{title: "Other Fees Pending", num: 0.1, prefix: "₹", suffix: " Cr"},
			{title: "Total Pending Fees", num: 1.2, prefix: "₹", suffix: " Cr"},
		},
		charts: []seedChart{
			{title: "Revenue Growth, LDRP-ITR (₹ Cr)", kind: "line", labels: months, values: []float64{3.5, 3.8, 4.0, 3.9, 4.2, 4.2}},
			{title: "Admission Applications", kind: "bar", labels: []string{"Mar", "Apr", "May", "Jun", "Jul"}, values: []float64{450, 620, 1100, 950, 1300}},
		},
		tables: []seedTable{{
			title:   "College Performance",
			columns: []string{"College", "Students", "Placement", "Rating"},
			rows: [][]string{
				{"CM Patel College", "3,456", "91%", "4.8"},
				{"LDRP-ITR", "2,845", "87%", "4.6"},
				{"KB College", "2,234", "82%", "4.4"},
			},
		}},
		activities: [][3]string{
			{"2 hours ago", "New batch of 450 students registered for Summer 2024.", "Registration"},
			{"5 hours ago", "Monthly financial report generated and sent to stakeholders.", "Finance"},
			{"1 day ago", "CM Patel College hostel renovation project completed.", "Infra"},
			{"2 days ago", "Faculty performance reviews initiated for Q2 2024.", "HR"},
		},
	},
	{
		role: "college", title: "College Admin Dashboard", theme: "light", style: "hero",
		subtitle: "Departments, placements and campus resources at a glance.",
		headline: []seedMetric{
			{title: "Total Students", num: 2850, change: "+5.2%", trend: "up"},
			{title: "Faculty Members", num: 145, change: "+2.1%", trend: "up"},
			{title: "Students Placed", num: 782, change: "+12.3%", trend: "up"},
			{title: "HODs", num: 8, change: "Stable", trend: "neutral"},
		},
		stats: libraryStats,
		charts: []seedChart{
			attendanceChart,
			{title: "Placements by Company", kind: "bar", labels: []string{"TCS", "Infosys", "Wipro", "Cognizant"}, values: []float64{85, 72, 68, 54}},
		},
		tables: []seedTable{hodTable},
	},
	{
		role: "principal", title: "Hello Dr. H. P. Verma", theme: "blue", style: "hero",
		subtitle: "Welcome back! Here's the college's performance overview.",
		headline: []seedMetric{
			{title: "Total Students", num: 2850, change: "+5.2%", trend: "up"},
			{title: "Faculty On Leave", num: 7, change: "+2 Today", trend: "up"},
			{title: "Placements YTD", num: 782, change: "+12.3%", trend: "up"},
			{title: "Pending Leave Apps", num: 5, change: "High", trend: "down"},
		},
		stats: libraryStats,
		charts: []seedChart{
			attendanceChart,
			{title: "Faculty Leave", kind: "bar", labels: []string{"Approved", "Pending", "Rejected"}, values: []float64{22, 5, 3}},
		},
		tables: []seedTable{
			hodTable,
			{
				title:   "Top Recruiters",
				columns: []string{"Company", "Students", "Package"},
				rows: [][]string{
					{"TCS", "85", "4.2 LPA"},
					{"Infosys", "72", "4.8 LPA"},
					{"Wipro", "68", "4.5 LPA"},
					{"Cognizant", "54", "5.2 LPA"},
				},
			},
		},
		activities: [][3]string{
			{"2 hours ago", "New batch of 120 students registered for Winter 2024.", "Registration"},
			{"4 hours ago", "Internal assessment results published for all departments.", "Academic"},
			{"1 day ago", "Campus security audit completed successfully.", "Infrastructure"},
			{"2 days ago", "Dr. Sharma's leave request has been approved.", "HR"},
		},
	},
	{
		role: "hod", title: "HOD Dashboard", theme: "light", style: "compact",
		subtitle: "Overview - Academic health, placements, events and feedback (department).",
		headline: []seedMetric{
			{title: "Pass Rate", num: 82, suffix: "%"},
			{title: "Placed Students", text: "71", suffix: "%"},
			{title: "Total Students", num: 420},
			{title: "Attendance Summary (January)", num: 84, suffix: "%"},
		},
		stats: []seedMetric{
			{title: "Average Package", num: 6.4, suffix: " LPA"},
		},
		charts: []seedChart{
			{title: "Pass / Fail / Dropout (%)", kind: "bar", labels: []string{"Pass", "Fail", "Dropout"}, values: []float64{82, 10, 8}},
			{title: "Placement Trend (%)", kind: "line", labels: []string{"2020", "2021", "2022", "2023", "2024", "2025"}, values: []float64{45, 55, 60, 62, 68, 71}},
		},
		tables: []seedTable{{
			title:   "Upcoming Events",
			columns: []string{"Event", "Date", "Time"},
			rows: [][]string{
				{"Industry Interaction: Cloud Security", "Oct 02, 2025", "10:00 AM"},
				{"Research Paper Workshop", "Oct 10, 2025", "2:00 PM"},
				{"Semester Exam Committee Meeting", "Oct 15, 2025", "11:00 AM"},
			},
		}},
	},
	{
		role: "coordinator", title: "Class Coordinator Dashboard", theme: "light", style: "compact",
		subtitle: "Attendance, grades and course delivery for your class.",
		headline: []seedMetric{
			{title: "Class Attendance", num: 92.5, suffix: "%", change: "+1.5%", trend: "up"},
			{title: "Average GPA", num: 3.4, change: "+0.1", trend: "up"},
			{title: "Leave Application", num: 78, change: "+5%", trend: "down"},
			{title: "Students at Risk", num: 4, change: "-1", trend: "down"},
		},
		stats: []seedMetric{
			{title: "Support Tickets", num: 5},
			{title: "Positive Mood", num: 75, suffix: "%"},
		},
		charts: []seedChart{
			{title: "GPA Distribution", kind: "bar", labels: []string{"< 2.0", "2.0-2.5", "2.5-3.0", "3.0-3.5", "3.5-4.0"}, values: []float64{2, 5, 12, 25, 16}},
			{title: "Weekly Attendance (%)", kind: "line", labels: []string{"W1", "W2", "W3", "W4", "W5", "W6"}, values: []float64{90, 91, 88, 92, 93, 92.5}},
		},
		tables: []seedTable{{
			title:   "Course Delivery",
			columns: []string{"Subject", "Faculty", "Completion", "Last Class"},
			rows: [][]string{
				{"Advanced Algorithms", "Dr. Alan Turing", "90%", "Graphs"},
				{"Database Systems", "Prof. Ada Lovelace", "75%", "Normalization"},
				{"Operating Systems", "Dr. Linus Torvalds", "65%", "Memory Mgmt"},
				{"Software Engineering", "Prof. Grace Hopper", "82%", "Agile Methods"},
			},
		}},
	},
	{
		role: "faculty", title: "Dr. Himani Trivedi", theme: "light", style: "compact",
		subtitle: "Assistant Professor, Computer Science",
		headline: []seedMetric{
			{title: "Today's Classes", num: 4, change: "+1 Lab", trend: "up"},
			{title: "Avg. Performance", num: 81, suffix: "%", change: "+2.5%", trend: "up"},
			{title: "Pending Submissions", num: 12, change: "+3", trend: "down"},
			{title: "Students at Risk", num: 3, change: "-1", trend: "down"},
		},
		charts: []seedChart{
			{title: "Average Marks by Class", kind: "bar", labels: []string{"CSE-2A", "CSE-3B"}, values: []float64{78, 82}},
		},
		tables: []seedTable{
			{
				title:   "Today's Schedule",
				columns: []string{"Subject", "Time", "Room", "Class", "Students"},
				rows: [][]string{
					{"Data Structures", "09:00 AM", "CS-201", "CSE-2A", "45"},
					{"Algorithm Analysis", "11:00 AM", "CS-301", "CSE-3B", "42"},
					{"Database Systems", "02:00 PM", "CS-401", "CSE-2B", "48"},
				},
			},
			{
				title:   "Pending Tasks",
				columns: []string{"Task", "Priority", "Due"},
				rows: [][]string{
					{"Enter IA marks for Algorithm Analysis", "high", "2 days left"},
					{"Submit attendance for Database Systems", "medium", "1 day left"},
				},
			},
		},
		activities: [][3]string{
			{"2 hours ago", "Attendance marked for Data Structures", "success"},
			{"1 day ago", "IA marks submitted for approval", "info"},
		},
	},
}

func seedID(parts ...any) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprint(parts...))).String()
}

// SeedDefaults ensures the mock dashboards exist. It is idempotent and safe to
// run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	existing, err := repository.NewDashboardRepo(db).List(ctx)
	if err == nil && len(existing) > 0 {
		return nil
	}
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		for idx, d := range defaultDashboards {
			if err := seedDashboardTx(ctx, tx, idx, d); err != nil {
				return errors.Wrapf(err, "seed dashboard %s", d.role)
			}
		}
		return nil
	})
}

func seedDashboardTx(ctx context.Context, tx *sql.Tx, idx int, d seedDashboard) error {
	dashID := seedID("dash:", d.role)
	if err := repository.NewDashboardRepo(tx).Upsert(ctx, repository.Dashboard{
		ID: dashID, Role: d.role, Title: d.title, Subtitle: d.subtitle,
		Theme: d.theme, CounterStyle: d.style, SortOrder: idx,
	}); err != nil {
		return err
	}

	metrics := repository.NewMetricRepo(tx)
	put := func(group string, list []seedMetric) error {
		for i, m := range list {
			trend := m.trend
			if trend == "" {
				trend = "neutral"
			}
			row := repository.Metric{
				ID: seedID("metric:", d.role, ":", m.title), DashboardID: dashID, Group: group,
				Title: m.title, Prefix: m.prefix, Suffix: m.suffix, Change: m.change, Trend: trend, SortOrder: i,
			}
			if m.text != "" {
				row.ValueText = m.text
			} else {
				v := m.num
				row.ValueNum = &v
			}
			if err := metrics.Upsert(ctx, row); err != nil {
				return err
			}
		}
		return nil
	}
	if err := put(repository.GroupHeadline, d.headline); err != nil {
		return err
	}
	if err := put(repository.GroupStat, d.stats); err != nil {
		return err
	}

	charts := repository.NewChartRepo(tx)
	for i, c := range d.charts {
		seriesID := seedID("chart:", d.role, ":", c.title)
		if err := charts.UpsertSeries(ctx, repository.ChartSeries{ID: seriesID, DashboardID: dashID, Title: c.title, Kind: c.kind, SortOrder: i}); err != nil {
			return err
		}
		for j, label := range c.labels {
			p := repository.ChartPoint{ID: seedID("point:", seriesID, ":", j), SeriesID: seriesID, Label: label, Value: c.values[j], SortOrder: j}
			if err := charts.UpsertPoint(ctx, p); err != nil {
				return err
			}
		}
	}

	tables := repository.NewTableRepo(tx)
	for i, t := range d.tables {
		it := repository.InfoTable{ID: seedID("table:", d.role, ":", t.title), DashboardID: dashID, Title: t.title, Columns: t.columns, Rows: t.rows, SortOrder: i}
		if err := tables.Upsert(ctx, it); err != nil {
			return err
		}
	}

	feed := repository.NewActivityRepo(tx)
	for i, a := range d.activities {
		if err := feed.Upsert(ctx, repository.Activity{
			ID: seedID("activity:", d.role, ":", i), DashboardID: dashID,
			Occurred: a[0], Body: a[1], Kind: a[2], SortOrder: i,
		}); err != nil {
			return err
		}
	}
	return nil
}
