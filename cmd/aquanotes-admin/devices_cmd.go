package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/view"
)

func (a *app) devices(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("devices", flag.ExitOnError)
	selectID := fs.Int("select", 0, "device id to show in detail")
	claim := fs.Bool("claim", false, "claim a device (-uid -name)")
	uid := fs.String("uid", "", "device uid")
	name := fs.String("name", "", "device name")
	remove := fs.String("remove", "", "remove device by uid")
	online := fs.Int("online", 0, "set device online by id")
	maintenance := fs.Int("maintenance", 0, "set device to maintenance by id")
	interval := fs.Int("interval", 0, "device id to update interval for")
	minutes := fs.Int("minutes", 0, "new connection interval in minutes")
	rename := fs.Int("rename", 0, "device id to rename (-name)")
	move := fs.Int("move", 0, "device id to move to another kolam (-kolam)")
	kolam := fs.Int("kolam", 0, "target kolam id for -move")
	thresholds := fs.Int("thresholds", 0, "device id to show/update thresholds for")
	setThreshold := fs.String("set", "", "threshold updates, e.g. temp_min=24,temp_max=32")

	adminStatus := fs.Int("admin-status", 0, "device id for admin status change")
	status := fs.String("status", "", "target status (online|offline|maintenance)")
	activate := fs.Int("activate", 0, "activate device by id (admin)")
	deactivate := fs.Int("deactivate", 0, "deactivate device by id (admin)")
	schedule := fs.Int("schedule", 0, "device id to schedule deactivation for (admin)")
	at := fs.String("at", "", "local datetime 2006-01-02T15:04, empty clears")
	clearSchedule := fs.Int("clear-schedule", 0, "clear scheduled deactivation by id (admin)")

	apiKey := fs.String("api-key", "", "store the admin provisioning API key")
	register := fs.String("register-uid", "", "pre-register a device uid (admin, uses stored API key)")
	fs.Parse(args)

	page := view.NewDevicesPage(a.deps)

	switch {
	case *apiKey != "":
		a.deps.Session.SetAdminAPIKey(*apiKey)
		fmt.Fprintln(a.out, "admin api key stored")
		return nil
	case *claim:
		device, err := page.Claim(ctx, *uid, *name)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "device claimed: #%d %s\n", device.ID, device.Name)
		return nil
	case *remove != "":
		if err := page.Remove(ctx, *remove); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "device removed")
		return nil
	case *online > 0:
		if err := page.SetOnline(ctx, *online); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "device set online")
		return nil
	case *maintenance > 0:
		if err := page.SetMaintenance(ctx, *maintenance); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "device set to maintenance")
		return nil
	case *interval > 0:
		if err := page.SetInterval(ctx, *interval, *minutes); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "interval updated")
		return nil
	case *rename > 0:
		if err := page.Rename(ctx, *rename, *name); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "device renamed")
		return nil
	case *move > 0:
		if err := page.Move(ctx, *move, *kolam); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "device moved")
		return nil
	case *thresholds > 0:
		return a.deviceThresholds(ctx, page, *thresholds, *setThreshold)
	case *adminStatus > 0:
		if err := page.AdminSetStatus(ctx, *adminStatus, *status); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "device status updated")
		return nil
	case *activate > 0:
		if err := page.AdminActivate(ctx, *activate); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "device activated")
		return nil
	case *deactivate > 0:
		if err := page.AdminDeactivate(ctx, *deactivate); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "device deactivated")
		return nil
	case *schedule > 0:
		if err := page.AdminSchedule(ctx, *schedule, *at); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "deactivate schedule updated")
		return nil
	case *clearSchedule > 0:
		if err := page.AdminSchedule(ctx, *clearSchedule, ""); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "deactivate schedule cleared")
		return nil
	case *register != "":
		if err := page.RegisterProvisioned(ctx, *register); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "device uid registered")
		return nil
	}

	v, err := page.Load(ctx, *selectID)
	if err != nil {
		return err
	}

	if v.IsAdmin {
		rows := make([][]string, 0, len(v.AdminDevices))
		for _, d := range v.AdminDevices {
			rows = append(rows, []string{strconv.Itoa(d.ID), d.Name, d.UID, orDash(d.UserName),
				d.Status, view.FormatTimestamp(d.LastSeen), activeLabel(d.IsActive)})
		}
		renderTable(a.out, []string{"ID", "Name", "UID", "Owner", "Status", "Last Seen", "Active"}, rows)
	} else {
		rows := make([][]string, 0, len(v.Devices))
		for _, d := range v.Devices {
			intervalLabel := "5"
			if d.ConnectionInterval != nil {
				intervalLabel = strconv.Itoa(*d.ConnectionInterval)
			}
			rows = append(rows, []string{strconv.Itoa(d.ID), d.Name, d.UID, d.Status,
				view.FormatTimestamp(d.LastSeen), activeLabel(d.IsActive), intervalLabel})
		}
		renderTable(a.out, []string{"ID", "Name", "UID", "Status", "Last Seen", "Active", "Interval (min)"}, rows)

		if v.Status != nil {
			fmt.Fprintf(a.out, "\nonline %d / offline %d / maintenance %d\n",
				v.Status.Online, v.Status.Offline, v.Status.Maintenance)
		}
	}

	if v.Selected != nil {
		fmt.Fprintln(a.out, "\nDevice detail:")
		pairs := [][2]string{
			{"Name", v.Selected.Name},
			{"UID", v.Selected.UID},
			{"Status", v.Selected.Status},
			{"Last Seen", view.FormatTimestamp(v.Selected.LastSeen)},
			{"Deactivate At", view.FormatTimestamp(v.Selected.DeactivateAt)},
		}
		if v.Selected.ConnectionInterval != nil {
			pairs = append(pairs, [2]string{"Interval (min)", strconv.Itoa(*v.Selected.ConnectionInterval)})
		}
		renderKV(a.out, pairs)

		if len(v.Selected.Trend) > 0 {
			fmt.Fprintln(a.out, "\nRecent readings:")
			trend := make([][]string, 0, len(v.Selected.Trend))
			for _, pt := range v.Selected.Trend {
				trend = append(trend, []string{pt.Timestamp, fmt.Sprintf("%.2f", pt.Suhu),
					fmt.Sprintf("%.2f", pt.Ph), fmt.Sprintf("%.2f", pt.Do)})
			}
			renderTable(a.out, []string{"Time", "Temp", "pH", "DO"}, trend)
		}
	}

	if len(v.Provisioned) > 0 {
		fmt.Fprintln(a.out, "\nProvisioned devices:")
		rows := make([][]string, 0, len(v.Provisioned))
		for _, d := range v.Provisioned {
			state := "unassigned"
			if d.Registered {
				state = "assigned"
			}
			rows = append(rows, []string{strconv.Itoa(d.ID), d.UID, orDash(d.UserName), state})
		}
		renderTable(a.out, []string{"ID", "UID", "Owner", "Status"}, rows)
	}
	return nil
}

// deviceThresholds 无 -set 时只展示当前阈值；有 -set 时解析 key=value 列表提交
func (a *app) deviceThresholds(ctx context.Context, page *view.DevicesPage, deviceID int, updates string) error {
	if updates != "" {
		payload, err := parseThresholdUpdates(updates)
		if err != nil {
			return err
		}
		if _, err := page.UpdateThresholds(ctx, deviceID, payload); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "thresholds updated")
	}

	current, err := page.Thresholds(ctx, deviceID)
	if err != nil {
		return err
	}
	renderKV(a.out, [][2]string{
		{"Temp min/max", thresholdRange(current.TempMin, current.TempMax)},
		{"pH min/max", thresholdRange(current.PhMin, current.PhMax)},
		{"DO min", thresholdValue(current.DoMin)},
		{"TDS max", thresholdValue(current.TdsMax)},
		{"Ammonia max", thresholdValue(current.AmmoniaMax)},
		{"Salinity min/max", thresholdRange(current.SalinitasMin, current.SalinitasMax)},
	})
	return nil
}

func parseThresholdUpdates(raw string) (domain.DeviceThreshold, error) {
	var payload domain.DeviceThreshold
	fields := map[string]**float64{
		"temp_min":      &payload.TempMin,
		"temp_max":      &payload.TempMax,
		"ph_min":        &payload.PhMin,
		"ph_max":        &payload.PhMax,
		"do_min":        &payload.DoMin,
		"tds_max":       &payload.TdsMax,
		"ammonia_max":   &payload.AmmoniaMax,
		"salinitas_min": &payload.SalinitasMin,
		"salinitas_max": &payload.SalinitasMax,
	}

	for _, part := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return payload, fmt.Errorf("bad threshold %q, want key=value", part)
		}
		target, known := fields[key]
		if !known {
			return payload, fmt.Errorf("unknown threshold %q", key)
		}
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return payload, fmt.Errorf("bad threshold value %q: %w", value, err)
		}
		*target = &parsed
	}
	return payload, nil
}

func thresholdValue(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func thresholdRange(min, max *float64) string {
	return thresholdValue(min) + " / " + thresholdValue(max)
}
