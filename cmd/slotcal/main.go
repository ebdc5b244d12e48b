// Command slotcal is an interactive terminal client for the slot service:
// browse month availability, inspect a day's slots, create and delete slots,
// and book one for a client.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/appointease/slot-service/internal/availability"
	"github.com/appointease/slot-service/internal/client"
	"github.com/appointease/slot-service/internal/model"
	"github.com/appointease/slot-service/internal/session"
	"github.com/appointease/slot-service/libs/runtime"
)

func main() {
	var (
		baseURL = flag.String("base-url", getenv("SLOT_SERVICE_URL", "http://localhost:8080"), "slot service base url")
		timeout = flag.Duration("timeout", 10*time.Second, "per-request timeout")
	)
	flag.Parse()

	logger := runtime.NewLogger("slotcal")
	api := client.New(*baseURL, *timeout)
	sess := session.New(api, logger)

	ctx, stop := runtime.SignalContext()
	defer stop()

	fmt.Printf("slotcal connected to %s (type 'help' for commands)\n", *baseURL)
	if err := refreshMonth(ctx, sess); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}
	printCalendar(sess.State())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(prompt(sess.State()))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]
		if cmd == "quit" || cmd == "exit" {
			break
		}
		if err := run(ctx, sess, cmd, args); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		if ctx.Err() != nil {
			break
		}
	}
}

func run(ctx context.Context, sess *session.Session, cmd string, args []string) error {
	switch cmd {
	case "help":
		printHelp()
		return nil
	case "cal":
		printCalendar(sess.State())
		return nil
	case "month":
		if len(args) != 2 {
			return fmt.Errorf("usage: month <year> <1-12>")
		}
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad year %q", args[0])
		}
		monthNum, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad month %q", args[1])
		}
		if err := sess.SetViewMonth(ctx, year, time.Month(monthNum)); err != nil {
			return err
		}
		printCalendar(sess.State())
		return nil
	case "select":
		if len(args) != 1 {
			return fmt.Errorf("usage: select <YYYY-MM-DD>")
		}
		if err := sess.SelectDate(ctx, args[0]); err != nil {
			return err
		}
		printSlots(sess.State())
		return nil
	case "slots":
		printSlots(sess.State())
		return nil
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: add <HH:MM> <HH:MM> [title...]")
		}
		return addOne(ctx, sess, args[0], args[1], titleFrom(args[2:]))
	case "gen":
		if len(args) < 4 {
			return fmt.Errorf("usage: gen <HH:MM> <HH:MM> <duration-min> <gap-min> [title...]")
		}
		duration, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("bad duration %q", args[2])
		}
		gap, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("bad gap %q", args[3])
		}
		created, err := sess.GenerateSlots(ctx, args[0], args[1], duration, gap, titleFrom(args[4:]))
		if err != nil {
			return err
		}
		fmt.Printf("created %d slots\n", len(created))
		printSlots(sess.State())
		return nil
	case "pick":
		if len(args) != 1 {
			return fmt.Errorf("usage: pick <slot-number>")
		}
		slot, err := slotByNumber(sess.State(), args[0])
		if err != nil {
			return err
		}
		if !sess.SelectSlotForBooking(slot) {
			return fmt.Errorf("slot %s %s-%s is %s, not bookable", slot.Date, slot.StartTime, slot.EndTime, slot.Status)
		}
		fmt.Printf("picked %s %s-%s; book with: book <name> <email> [phone]\n", slot.Date, slot.StartTime, slot.EndTime)
		return nil
	case "unpick":
		sess.ClearSelectedSlot()
		return nil
	case "book":
		if len(args) < 2 {
			return fmt.Errorf("usage: book <name> <email> [phone]")
		}
		info := model.ClientInfo{Name: args[0], Email: args[1]}
		if len(args) > 2 {
			info.Phone = args[2]
		}
		if err := sess.BookSlot(ctx, info); err != nil {
			return err
		}
		fmt.Println("booked")
		printSlots(sess.State())
		return nil
	case "delete":
		if len(args) != 1 {
			return fmt.Errorf("usage: delete <slot-number>")
		}
		slot, err := slotByNumber(sess.State(), args[0])
		if err != nil {
			return err
		}
		if err := sess.DeleteSlot(ctx, slot.ID); err != nil {
			return err
		}
		fmt.Println("deleted")
		printSlots(sess.State())
		return nil
	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
}

func addOne(ctx context.Context, sess *session.Session, start, end, title string) error {
	date := sess.State().SelectedDate()
	if date == "" {
		return session.ErrNoSelection
	}
	desc := model.SlotDescriptor{
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Title:     title,
	}
	created, err := sess.AddSlots(ctx, []model.SlotDescriptor{desc})
	if err != nil {
		return err
	}
	fmt.Printf("created %d slot\n", len(created))
	printSlots(sess.State())
	return nil
}

func titleFrom(rest []string) string {
	title := strings.Join(rest, " ")
	if title == "" {
		title = "Appointment"
	}
	return title
}

func slotByNumber(st *session.State, raw string) (model.Slot, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > len(st.Slots()) {
		return model.Slot{}, fmt.Errorf("no slot numbered %q on %s", raw, st.SelectedDate())
	}
	return st.Slots()[n-1], nil
}

func refreshMonth(ctx context.Context, sess *session.Session) error {
	vm := sess.State().ViewMonth()
	return sess.SetViewMonth(ctx, vm.Year, vm.Month)
}

func prompt(st *session.State) string {
	if st.SelectedDate() != "" {
		return st.SelectedDate() + "> "
	}
	vm := st.ViewMonth()
	return fmt.Sprintf("%04d-%02d> ", vm.Year, int(vm.Month))
}

var classMarks = map[availability.DayClass]byte{
	availability.ClassNone:      ' ',
	availability.ClassAvailable: '.',
	availability.ClassMixed:     '~',
	availability.ClassBooked:    '*',
}

// printCalendar renders the viewed month as a grid. Each cell carries a mark
// for the day's occupancy: '.' available, '~' mixed, '*' fully booked.
func printCalendar(st *session.State) {
	vm := st.ViewMonth()
	byDay := st.MonthAvailability()
	first := time.Date(vm.Year, vm.Month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	fmt.Printf("     %s %d\n", vm.Month, vm.Year)
	fmt.Println(" Su  Mo  Tu  We  Th  Fr  Sa")
	fmt.Print(strings.Repeat("    ", int(first.Weekday())))
	for day := 1; day <= daysInMonth; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", vm.Year, int(vm.Month), day)
		mark := classMarks[availability.Classify(byDay[date])]
		fmt.Printf("%3d%c", day, mark)
		if (int(first.Weekday())+day)%7 == 0 {
			fmt.Println()
		}
	}
	fmt.Println()
}

func printSlots(st *session.State) {
	date := st.SelectedDate()
	if date == "" {
		fmt.Println("no date selected (use: select <YYYY-MM-DD>)")
		return
	}
	slots := st.Slots()
	if len(slots) == 0 {
		fmt.Printf("%s: no slots\n", date)
		return
	}
	for i, s := range slots {
		line := fmt.Sprintf("%2d. %s-%s  %-9s %s", i+1, s.StartTime, s.EndTime, s.Status, s.Title)
		if s.BookedBy != nil {
			line += "  (" + s.BookedBy.Name + ")"
		}
		fmt.Println(line)
	}
	info := availability.Summarize(slots)
	fmt.Printf("%s: %d available, %d booked, %d total\n", date, info.Available, info.Booked, info.Total)
}

func printHelp() {
	fmt.Print(`commands:
  cal                                     show the viewed month
  month <year> <1-12>                     change the viewed month
  select <YYYY-MM-DD>                     select a date and list its slots
  slots                                   list the selected date's slots
  add <HH:MM> <HH:MM> [title...]          create one slot on the selected date
  gen <HH:MM> <HH:MM> <dur> <gap> [t...]  generate back-to-back slots
  pick <n>                                pick an available slot for booking
  unpick                                  drop the booking pick
  book <name> <email> [phone]             book the picked slot
  delete <n>                              delete slot number n
  quit
`)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
