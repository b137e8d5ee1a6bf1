package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/session"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/view"
)

type app struct {
	deps view.Deps
	out  io.Writer
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "logout":
		a.deps.Session.Logout(ctx)
		fmt.Fprintln(a.out, "logged out")
		return nil
	case "whoami":
		return a.whoami(ctx)
	case "dashboard":
		return a.dashboard(ctx)
	case "ponds":
		return a.ponds(ctx, args)
	case "devices":
		return a.devices(ctx, args)
	case "readings":
		return a.readings(ctx, args)
	case "alerts":
		return a.alerts(ctx, args)
	case "users":
		return a.users(ctx, args)
	case "settings":
		return a.settings(ctx, args)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	user, err := a.deps.Session.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "logged in as %s (%s)\n", user.Name, user.Role)
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	switch a.deps.Session.State() {
	case session.StateUnauthenticated:
		fmt.Fprintln(a.out, "not logged in")
		return nil
	case session.StateResolving:
		fmt.Fprintln(a.out, "resolving profile...")
	}
	user, err := a.deps.Session.CurrentUser(ctx)
	if err != nil {
		return err
	}
	renderKV(a.out, [][2]string{
		{"Name", user.Name},
		{"Email", user.Email},
		{"Role", user.Role},
		{"Cooldown (min)", strconv.Itoa(user.NotificationCooldownMinutes)},
	})
	return nil
}

func (a *app) dashboard(ctx context.Context) error {
	page := view.NewDashboardPage(a.deps)
	v, err := page.Load(ctx)
	if err != nil {
		return err
	}

	if v.Admin != nil {
		o := v.Admin.Overview
		renderKV(a.out, [][2]string{
			{"Total Users", strconv.Itoa(o.TotalUsers)},
			{"Total Devices", strconv.Itoa(o.TotalDevices)},
			{"Total Tambak", strconv.Itoa(o.TotalTambak)},
			{"Total Kolam", strconv.Itoa(o.TotalKolam)},
			{"Total Alerts", strconv.Itoa(o.TotalNotifications)},
			{"Devices Online", strconv.Itoa(o.OnlineDevices)},
			{"Devices Offline", strconv.Itoa(o.OfflineDevices)},
			{"Devices Maintenance", strconv.Itoa(o.MaintenanceDevices)},
			{"Devices Inactive", strconv.Itoa(o.InactiveDevices)},
			{"Database", map[bool]string{true: "connected", false: "down"}[o.DatabaseOK]},
		})
		return nil
	}

	o := v.Operator
	renderKV(a.out, [][2]string{
		{"Total Ponds", strconv.Itoa(len(o.Tambak))},
		{"Devices Online", strconv.Itoa(o.Status.Online)},
		{"Devices Offline", strconv.Itoa(o.Status.Offline)},
		{"Devices Maintenance", strconv.Itoa(o.Status.Maintenance)},
		{"Unread Alerts", strconv.Itoa(o.UnreadAlerts)},
	})
	if len(o.Trend) > 0 {
		fmt.Fprintln(a.out, "\nSensor trend (latest pond device):")
		rows := make([][]string, 0, len(o.Trend))
		for _, pt := range o.Trend {
			rows = append(rows, []string{pt.Timestamp, fmt.Sprintf("%.2f", pt.Suhu), fmt.Sprintf("%.2f", pt.Ph), fmt.Sprintf("%.2f", pt.Do)})
		}
		renderTable(a.out, []string{"Time", "Temp", "pH", "DO"}, rows)
	}
	return nil
}

func (a *app) ponds(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ponds", flag.ExitOnError)
	tambakID := fs.Int("tambak", 0, "selected tambak id")
	createTambak := fs.Bool("create-tambak", false, "create a tambak from the flags below")
	name := fs.String("name", "", "tambak name")
	country := fs.String("country", "", "country")
	province := fs.String("province", "", "province")
	city := fs.String("city", "", "city")
	district := fs.String("district", "", "district")
	village := fs.String("village", "", "village")
	address := fs.String("address", "", "address")
	cultivation := fs.String("cultivation", "", "cultivation type")
	deleteTambak := fs.Int("delete-tambak", 0, "delete tambak by id")

	createKolam := fs.Bool("create-kolam", false, "create a kolam in the selected tambak")
	nama := fs.String("nama", "", "kolam name")
	tipe := fs.String("tipe", "", "kolam type")
	panjang := fs.Float64("panjang", 0, "length (m)")
	lebar := fs.Float64("lebar", 0, "width (m)")
	kedalaman := fs.Float64("kedalaman", 0, "depth (m)")
	komoditas := fs.String("komoditas", "", "commodity")
	deviceID := fs.Int("device", 0, "device id to bind")
	deleteKolam := fs.Int("delete-kolam", 0, "delete kolam by id")
	fs.Parse(args)

	page := view.NewPondsPage(a.deps)

	switch {
	case *createTambak:
		created, err := page.CreateTambak(ctx, domain.CreateTambakRequest{
			Name: *name, Country: *country, Province: *province, City: *city,
			District: *district, Village: *village, Address: *address, CultivationType: *cultivation,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "tambak created: #%d %s\n", created.ID, created.Name)
		return nil
	case *deleteTambak > 0:
		if err := page.DeleteTambak(ctx, *deleteTambak); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "tambak deleted")
		return nil
	case *createKolam:
		created, err := page.CreateKolam(ctx, domain.CreateKolamRequest{
			Nama: *nama, Tipe: *tipe, Panjang: *panjang, Lebar: *lebar,
			Kedalaman: *kedalaman, Komoditas: *komoditas, TambakID: *tambakID, DeviceID: *deviceID,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "kolam created: #%d %s\n", created.ID, created.Nama)
		return nil
	case *deleteKolam > 0:
		if err := page.DeleteKolam(ctx, *deleteKolam, *tambakID); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "kolam deleted")
		return nil
	}

	v, err := page.Load(ctx, *tambakID)
	if err != nil {
		return err
	}
	if v.AdminNotice {
		fmt.Fprintln(a.out, "admins have no tambak/kolam; use the devices and users pages instead")
		return nil
	}

	rows := make([][]string, 0, len(v.Tambak))
	for _, t := range v.Tambak {
		marker := " "
		if t.ID == v.ActiveTambakID {
			marker = "*"
		}
		rows = append(rows, []string{marker, strconv.Itoa(t.ID), t.Name, t.City + ", " + t.Province, t.CultivationType})
	}
	renderTable(a.out, []string{"", "ID", "Name", "Location", "Cultivation"}, rows)

	fmt.Fprintln(a.out, "\nKolam for selected tambak:")
	kolamRows := make([][]string, 0, len(v.Kolam))
	for _, k := range v.Kolam {
		kolamRows = append(kolamRows, []string{strconv.Itoa(k.ID), k.Nama, k.Tipe, k.Komoditas,
			fmt.Sprintf("%.1fx%.1fx%.1f", k.Panjang, k.Lebar, k.Kedalaman)})
	}
	renderTable(a.out, []string{"ID", "Name", "Type", "Commodity", "Size"}, kolamRows)
	return nil
}

func (a *app) alerts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("alerts", flag.ExitOnError)
	markRead := fs.Int("mark-read", 0, "mark one notification read")
	markAll := fs.Bool("mark-all-read", false, "mark all notifications read")
	fs.Parse(args)

	page := view.NewAlertsPage(a.deps)
	switch {
	case *markRead > 0:
		if err := page.MarkRead(ctx, *markRead); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "marked read")
	case *markAll:
		if err := page.MarkAllRead(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "all marked read")
	}

	v, err := page.Load(ctx)
	if err != nil {
		return err
	}
	if v.AdminNotice {
		fmt.Fprintln(a.out, "global alerts view is not enabled yet")
		return nil
	}

	rows := make([][]string, 0, len(v.Notifications))
	for _, n := range v.Notifications {
		state := "unread"
		if n.IsRead {
			state = "read"
		}
		rows = append(rows, []string{strconv.Itoa(n.ID), n.DeviceName, n.Message, n.Parameter,
			fmt.Sprintf("%.2f", n.CurrentValue), state})
	}
	renderTable(a.out, []string{"ID", "Device", "Message", "Parameter", "Value", "Status"}, rows)
	return nil
}
