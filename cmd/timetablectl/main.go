package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/lectio/timetable/internal/app"
	"github.com/lectio/timetable/internal/config"
	"github.com/lectio/timetable/internal/engine"
	"github.com/lectio/timetable/internal/model"
	"github.com/lectio/timetable/internal/repository"
	"github.com/lectio/timetable/internal/service"
)

// cliContext carries the wired application into command Run methods.
type cliContext struct {
	ctx       context.Context
	cfg       *config.Config
	pool      *pgxpool.Pool
	logger    *zap.Logger
	checker   *engine.Checker
	calc      *engine.Calculator
	assembler *engine.Assembler

	rooms     *repository.RoomRepository
	teachers  *repository.TeacherRepository
	groups    *repository.GroupRepository
	subjects  *repository.SubjectRepository
	periods   *repository.PeriodRepository
	semesters *repository.SemesterRepository

	schedulesSvc *service.ScheduleService
	semestersSvc *service.SemesterService
	lessonsSvc   *service.LessonService
}

type slotFlags struct {
	Semester int64  `required:"" help:"Semester id."`
	Day      string `required:"" help:"Day of week, e.g. MONDAY."`
	Period   int64  `required:"" help:"Period id."`
	Parity   string `default:"WEEKLY" help:"EVEN, ODD or WEEKLY."`
}

func (f slotFlags) slot() (model.Slot, error) {
	day, err := parseDay(f.Day)
	if err != nil {
		return model.Slot{}, err
	}
	parity := model.EvenOdd(strings.ToUpper(f.Parity))
	if !parity.Valid() {
		return model.Slot{}, fmt.Errorf("unknown parity %q", f.Parity)
	}
	return model.Slot{SemesterID: f.Semester, Day: day, PeriodID: f.Period, Parity: parity}, nil
}

type conflictCmd struct {
	slotFlags
	Kind     string `required:"" help:"Resource kind: group, teacher or room."`
	Resource int64  `required:"" help:"Resource id."`
}

func (c *conflictCmd) Run(cli *cliContext) error {
	slot, err := c.slot()
	if err != nil {
		return err
	}
	kind := model.ResourceKind(strings.ToLower(c.Kind))
	count, err := cli.checker.Conflicts(cli.ctx, slot, kind, c.Resource)
	if err != nil {
		return err
	}
	return printJSON(map[string]any{"conflicts": count, "has_conflict": count > 0})
}

type freeCmd struct {
	slotFlags
	Kind string `default:"room" help:"Resource kind: group, teacher or room."`
}

func (c *freeCmd) Run(cli *cliContext) error {
	slot, err := c.slot()
	if err != nil {
		return err
	}
	free, err := cli.calc.FreeResources(cli.ctx, slot, model.ResourceKind(strings.ToLower(c.Kind)))
	if err != nil {
		return err
	}
	return printJSON(free)
}

type roomsCmd struct {
	slotFlags
}

func (c *roomsCmd) Run(cli *cliContext) error {
	slot, err := c.slot()
	if err != nil {
		return err
	}
	rooms, err := cli.calc.AnnotatedAvailability(cli.ctx, slot, model.ResourceRoom)
	if err != nil {
		return err
	}
	return printJSON(rooms)
}

type timetableGroupCmd struct {
	Semester int64 `required:"" help:"Semester id."`
	Group    int64 `required:"" help:"Group id."`
}

func (c *timetableGroupCmd) Run(cli *cliContext) error {
	grid, err := cli.assembler.AssembleForGroup(cli.ctx, c.Semester, c.Group)
	if err != nil {
		return err
	}
	return printJSON(grid)
}

type timetableTeacherCmd struct {
	Semester int64 `required:"" help:"Semester id."`
	Teacher  int64 `required:"" help:"Teacher id."`
}

func (c *timetableTeacherCmd) Run(cli *cliContext) error {
	grid, err := cli.assembler.AssembleForTeacher(cli.ctx, c.Semester, c.Teacher)
	if err != nil {
		return err
	}
	return printJSON(grid)
}

type timetableRoomsCmd struct {
	Semester int64 `required:"" help:"Semester id."`
}

func (c *timetableRoomsCmd) Run(cli *cliContext) error {
	grids, err := cli.assembler.AssembleForRooms(cli.ctx, c.Semester)
	if err != nil {
		return err
	}
	return printJSON(grids)
}

type timetableSemesterCmd struct {
	Semester int64 `required:"" help:"Semester id."`
}

func (c *timetableSemesterCmd) Run(cli *cliContext) error {
	grid, err := cli.assembler.AssembleForSemester(cli.ctx, c.Semester)
	if err != nil {
		return err
	}
	return printJSON(grid)
}

type scheduleCreateCmd struct {
	slotFlags
	Room   int64 `required:"" help:"Room id."`
	Lesson int64 `required:"" help:"Lesson id."`
}

func (c *scheduleCreateCmd) Run(cli *cliContext) error {
	slot, err := c.slot()
	if err != nil {
		return err
	}
	created, err := cli.schedulesSvc.Create(cli.ctx, service.CreateSchedule{
		SemesterID: slot.SemesterID,
		Day:        slot.Day,
		Parity:     slot.Parity,
		PeriodID:   slot.PeriodID,
		RoomID:     c.Room,
		LessonID:   c.Lesson,
	})
	if err != nil {
		return err
	}
	return printJSON(created)
}

type scheduleInfoCmd struct {
	slotFlags
	Lesson int64 `required:"" help:"Lesson id."`
}

func (c *scheduleInfoCmd) Run(cli *cliContext) error {
	slot, err := c.slot()
	if err != nil {
		return err
	}
	info, err := cli.schedulesSvc.CreationInfo(cli.ctx, slot.SemesterID, slot.Day, slot.Parity, slot.PeriodID, c.Lesson)
	if err != nil {
		return err
	}
	return printJSON(info)
}

type scheduleGetCmd struct {
	ID int64 `required:"" help:"Schedule id."`
}

func (c *scheduleGetCmd) Run(cli *cliContext) error {
	schedule, err := cli.schedulesSvc.GetByID(cli.ctx, c.ID)
	if err != nil {
		return err
	}
	return printJSON(schedule)
}

type scheduleListCmd struct {
	Semester int64 `required:"" help:"Semester id."`
}

func (c *scheduleListCmd) Run(cli *cliContext) error {
	schedules, err := cli.schedulesSvc.ListBySemester(cli.ctx, c.Semester)
	if err != nil {
		return err
	}
	return printJSON(schedules)
}

type scheduleDeleteCmd struct {
	ID int64 `required:"" help:"Schedule id."`
}

func (c *scheduleDeleteCmd) Run(cli *cliContext) error {
	return cli.schedulesSvc.Delete(cli.ctx, c.ID)
}

type lessonAddCmd struct {
	Teacher        int64  `required:"" help:"Teacher id."`
	Subject        int64  `required:"" help:"Subject id."`
	Group          int64  `required:"" help:"Group id."`
	Type           string `default:"LECTURE" enum:"LECTURE,LABORATORY,PRACTICAL" help:"Lesson type."`
	Hours          int    `default:"1" help:"Planned hours."`
	TeacherForSite string `help:"Display name override for the teacher."`
	SubjectForSite string `help:"Display name override for the subject."`
}

func (c *lessonAddCmd) Run(cli *cliContext) error {
	lesson := &model.Lesson{
		Hours:          c.Hours,
		TeacherForSite: c.TeacherForSite,
		SubjectForSite: c.SubjectForSite,
		Type:           model.LessonType(c.Type),
		TeacherID:      c.Teacher,
		SubjectID:      c.Subject,
		GroupID:        c.Group,
	}
	if err := cli.lessonsSvc.Save(cli.ctx, lesson); err != nil {
		return err
	}
	return printJSON(lesson)
}

type lessonGetCmd struct {
	ID int64 `required:"" help:"Lesson id."`
}

func (c *lessonGetCmd) Run(cli *cliContext) error {
	lesson, err := cli.lessonsSvc.GetByID(cli.ctx, c.ID)
	if err != nil {
		return err
	}
	return printJSON(lesson)
}

type lessonListCmd struct {
	Group int64 `required:"" help:"Group id."`
}

func (c *lessonListCmd) Run(cli *cliContext) error {
	lessons, err := cli.lessonsSvc.ListByGroup(cli.ctx, c.Group)
	if err != nil {
		return err
	}
	return printJSON(lessons)
}

type semesterCreateCmd struct {
	Description string   `required:"" help:"Term name, e.g. 'Fall'."`
	Year        int      `required:"" help:"Academic year."`
	Start       string   `required:"" help:"First day, YYYY-MM-DD."`
	End         string   `required:"" help:"Last day, YYYY-MM-DD."`
	Days        []string `required:"" help:"Teaching days, comma separated."`
	Periods     []int64  `help:"Period ids taught in this semester."`
}

func (c *semesterCreateCmd) Run(cli *cliContext) error {
	start, err := time.Parse("2006-01-02", c.Start)
	if err != nil {
		return fmt.Errorf("parse start day: %w", err)
	}
	end, err := time.Parse("2006-01-02", c.End)
	if err != nil {
		return fmt.Errorf("parse end day: %w", err)
	}
	days := make([]time.Weekday, 0, len(c.Days))
	for _, d := range c.Days {
		day, err := parseDay(d)
		if err != nil {
			return err
		}
		days = append(days, day)
	}

	semester, err := cli.semestersSvc.Create(cli.ctx, service.CreateSemester{
		Description: c.Description,
		Year:        c.Year,
		StartDay:    start,
		EndDay:      end,
		Days:        days,
		PeriodIDs:   c.Periods,
	})
	if err != nil {
		return err
	}
	return printJSON(semester)
}

type semesterShowCmd struct {
	ID int64 `required:"" help:"Semester id."`
}

func (c *semesterShowCmd) Run(cli *cliContext) error {
	semester, err := cli.semestersSvc.GetByID(cli.ctx, c.ID)
	if err != nil {
		return err
	}
	return printJSON(semester)
}

type semesterCurrentCmd struct{}

func (c *semesterCurrentCmd) Run(cli *cliContext) error {
	semester, err := cli.semestersSvc.GetCurrent(cli.ctx)
	if err != nil {
		return err
	}
	return printJSON(semester)
}

type semesterSetCurrentCmd struct {
	ID int64 `required:"" help:"Semester id."`
}

func (c *semesterSetCurrentCmd) Run(cli *cliContext) error {
	return cli.semestersSvc.SetCurrent(cli.ctx, c.ID)
}

type listCmd struct {
	Kind     string `arg:"" enum:"rooms,teachers,groups,subjects,semesters,periods" help:"Entity kind to list."`
	Disabled bool   `help:"Show soft-deleted entries instead of enabled ones."`
	Semester int64  `help:"For periods: limit to one semester's configured periods."`
}

func (c *listCmd) Run(cli *cliContext) error {
	if c.Disabled {
		switch c.Kind {
		case "rooms":
			return runList(cli.rooms.Disabled(cli.ctx))
		case "teachers":
			return runList(cli.teachers.Disabled(cli.ctx))
		case "groups":
			return runList(cli.groups.Disabled(cli.ctx))
		case "semesters":
			return runList(cli.semestersSvc.Disabled(cli.ctx))
		}
		return fmt.Errorf("no disabled listing for %s", c.Kind)
	}

	switch c.Kind {
	case "rooms":
		return runList(cli.rooms.Enabled(cli.ctx))
	case "teachers":
		return runList(cli.teachers.Enabled(cli.ctx))
	case "groups":
		return runList(cli.groups.Enabled(cli.ctx))
	case "subjects":
		return runList(cli.subjects.Enabled(cli.ctx))
	case "semesters":
		return runList(cli.semesters.Enabled(cli.ctx))
	case "periods":
		if c.Semester != 0 {
			return runList(cli.periods.ForSemester(cli.ctx, c.Semester))
		}
		return runList(cli.periods.Enabled(cli.ctx))
	}
	return fmt.Errorf("unknown entity kind %q", c.Kind)
}

func runList[T any](items []T, err error) error {
	if err != nil {
		return err
	}
	return printJSON(items)
}

var CLI struct {
	Migrate  migrateCmd  `cmd:"" help:"Apply database migrations."`
	Conflict conflictCmd `cmd:"" help:"Check one resource for a conflict at a slot."`
	Free     freeCmd     `cmd:"" help:"List free resources for a slot."`
	Rooms    roomsCmd    `cmd:"" help:"List every room for a slot tagged with availability."`

	Timetable struct {
		Group    timetableGroupCmd    `cmd:"" help:"Full grid for a group."`
		Teacher  timetableTeacherCmd  `cmd:"" help:"Full grid for a teacher."`
		Rooms    timetableRoomsCmd    `cmd:"" help:"One grid per booked room."`
		Semester timetableSemesterCmd `cmd:"" help:"One grid per booked group."`
	} `cmd:"" help:"Assemble full timetables."`

	Schedule struct {
		Create scheduleCreateCmd `cmd:"" help:"Book a lesson into a slot after conflict checks."`
		Info   scheduleInfoCmd   `cmd:"" help:"Availability report for a proposed booking."`
		Get    scheduleGetCmd    `cmd:"" help:"Show one booking."`
		List   scheduleListCmd   `cmd:"" help:"List a semester's bookings."`
		Delete scheduleDeleteCmd `cmd:"" help:"Remove a booking."`
	} `cmd:"" help:"Manage bookings."`

	Lesson struct {
		Add  lessonAddCmd  `cmd:"" help:"Register a lesson."`
		Get  lessonGetCmd  `cmd:"" help:"Show one lesson."`
		List lessonListCmd `cmd:"" help:"List a group's lessons."`
	} `cmd:"" help:"Manage lessons."`

	Semester struct {
		Create     semesterCreateCmd     `cmd:"" help:"Register a semester."`
		Show       semesterShowCmd       `cmd:"" help:"Show one semester."`
		Current    semesterCurrentCmd    `cmd:"" help:"Show the current semester."`
		SetCurrent semesterSetCurrentCmd `cmd:"" name:"set-current" help:"Switch the current semester."`
	} `cmd:"" help:"Manage semesters."`

	List listCmd `cmd:"" help:"List directory entities."`
}

type migrateCmd struct {
	Version bool `help:"Print the current migration version instead of migrating."`
}

func (c *migrateCmd) Run(cli *cliContext) error {
	migrator, err := app.NewMigrator(cli.pool, cli.cfg.MigrationsPath, cli.logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	if c.Version {
		version, err := migrator.Version(cli.ctx)
		if err != nil {
			return err
		}
		return printJSON(map[string]int64{"version": version})
	}
	return migrator.Run(cli.ctx)
}

func main() {
	parsed := kong.Parse(&CLI,
		kong.Name("timetablectl"),
		kong.Description("University timetable conflict & availability engine"),
		kong.UsageOnError(),
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	schedules := repository.NewScheduleRepository(pool)
	lessons := repository.NewLessonRepository(pool)
	rooms := repository.NewRoomRepository(pool)
	teachers := repository.NewTeacherRepository(pool)
	groups := repository.NewGroupRepository(pool)
	subjects := repository.NewSubjectRepository(pool)
	periods := repository.NewPeriodRepository(pool)
	semesters := repository.NewSemesterRepository(pool)
	directory := repository.NewResourceDirectory(rooms, teachers, groups, semesters)

	checker := engine.NewChecker(schedules, logger)
	calc := engine.NewCalculator(schedules, directory, logger)
	assembler := engine.NewAssembler(schedules, directory, logger)

	cli := &cliContext{
		ctx:       ctx,
		cfg:       cfg,
		pool:      pool,
		logger:    logger,
		checker:   checker,
		calc:      calc,
		assembler: assembler,

		rooms:     rooms,
		teachers:  teachers,
		groups:    groups,
		subjects:  subjects,
		periods:   periods,
		semesters: semesters,

		schedulesSvc: service.NewScheduleService(schedules, lessons, semesters, periods, checker, calc, logger),
		semestersSvc: service.NewSemesterService(semesters, logger),
		lessonsSvc:   service.NewLessonService(lessons, teachers, subjects, logger),
	}

	if err := parsed.Run(cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func parseDay(s string) (time.Weekday, error) {
	days := map[string]time.Weekday{
		"SUNDAY":    time.Sunday,
		"MONDAY":    time.Monday,
		"TUESDAY":   time.Tuesday,
		"WEDNESDAY": time.Wednesday,
		"THURSDAY":  time.Thursday,
		"FRIDAY":    time.Friday,
		"SATURDAY":  time.Saturday,
	}
	day, ok := days[strings.ToUpper(s)]
	if !ok {
		return 0, fmt.Errorf("unknown day of week %q", s)
	}
	return day, nil
}
