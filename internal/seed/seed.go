// Package seed loads a realistic summer of camp data: sessions, cabin
// groups, staff and the duty job catalogs for both flows.
package seed

import (
	"log/slog"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
	"github.com/camp-decathlon/duty-scheduler/backend/internal/repository"
)

func i32(v int32) *int32 { return &v }

type seedSession struct {
	number int32
	name   string
	weeks  int32
	groups []seedGroup
}

type seedGroup struct {
	name  string
	staff []seedStaff
}

type seedStaff struct {
	name   string
	role   domain.JobType
	gender string
}

var sessions = []seedSession{
	{
		number: 1,
		name:   "June Session",
		weeks:  3,
		groups: []seedGroup{
			{name: "Beavers", staff: []seedStaff{
				{"Maya Thompson", domain.JobTypeCounselor, "female"},
				{"Jake Sullivan", domain.JobTypeCounselor, "male"},
				{"Priya Raman", domain.JobTypeJC, "female"},
			}},
			{name: "Eagles", staff: []seedStaff{
				{"Liam Ortiz", domain.JobTypeCounselor, "male"},
				{"Sofia Bennett", domain.JobTypeCounselor, "female"},
				{"Noah Kim", domain.JobTypeJC, "male"},
			}},
			{name: "Foxes", staff: []seedStaff{
				{"Grace Donnelly", domain.JobTypeCounselor, "female"},
				{"Ethan Walsh", domain.JobTypeCounselor, "male"},
				{"Hannah Lee", domain.JobTypeJC, "female"},
			}},
			{name: "Owls", staff: []seedStaff{
				{"Caleb Murray", domain.JobTypeCounselor, "male"},
				{"Zoe Fitzgerald", domain.JobTypeCounselor, "female"},
			}},
		},
	},
	{
		number: 2,
		name:   "July Session",
		weeks:  4,
		groups: []seedGroup{
			{name: "Herons", staff: []seedStaff{
				{"Olivia Marsh", domain.JobTypeCounselor, "female"},
				{"Daniel Price", domain.JobTypeCounselor, "male"},
				{"Lucas Romero", domain.JobTypeJC, "male"},
			}},
			{name: "Lynx", staff: []seedStaff{
				{"Emma Castillo", domain.JobTypeCounselor, "female"},
				{"Ben Horowitz", domain.JobTypeCounselor, "male"},
				{"Ava Nguyen", domain.JobTypeJC, "female"},
			}},
			{name: "Ospreys", staff: []seedStaff{
				{"Mia Kowalski", domain.JobTypeCounselor, "female"},
				{"Tom Gallagher", domain.JobTypeCounselor, "male"},
				{"Ruby Sanders", domain.JobTypeJC, "female"},
			}},
		},
	},
}

var lunchJobs = []domain.Job{
	{Code: domain.JobCodeArtsAndCrafts, Name: "Arts & Crafts", Description: "Run the arts and crafts station during lunch", Type: domain.FlowLunch, MinStaff: i32(1), NormalStaff: i32(2), MaxStaff: i32(2), Priority: 100},
	{Code: domain.JobCodeCardTrading, Name: "Card Trading", Description: "Supervise the card trading table", Type: domain.FlowLunch, MinStaff: i32(1), NormalStaff: i32(2), MaxStaff: i32(2), Priority: 90},
	{Code: "TD", Name: "Tie Dye", Description: "Run tie dye on declared tie dye days", Type: domain.FlowLunch, MinStaff: i32(1), NormalStaff: i32(2), MaxStaff: i32(3), Priority: 80},
	{Code: domain.JobCodeMulti, Name: "Multi Court", Description: "Cover the multi-sport court", Type: domain.FlowLunch, MinStaff: i32(2), NormalStaff: i32(3), MaxStaff: i32(4), Priority: 70},
	{Code: "FF", Name: "Field and Fitness", Description: "Cover the main field", Type: domain.FlowLunch, MinStaff: i32(1), NormalStaff: i32(2), MaxStaff: i32(3), Priority: 60},
	{Code: "LIB", Name: "Library", Description: "Keep an eye on the quiet room", Type: domain.FlowLunch, MinStaff: i32(1), NormalStaff: i32(1), MaxStaff: i32(2), Priority: 50},
	{Code: domain.JobCodeStaffGames, Name: "Staff Games", Description: "Placeholder duty for staff game days", Type: domain.FlowLunch, Priority: 0},
}

var ampmJobs = []domain.Job{
	{Code: "BUS", Name: "Bus Duty", Description: "Meet buses at drop-off and pick-up", Type: domain.FlowAMPM, MinStaff: i32(2), NormalStaff: i32(3), MaxStaff: i32(4), Priority: 100},
	{Code: "GATE", Name: "Gate Duty", Description: "Check campers in and out at the front gate", Type: domain.FlowAMPM, MinStaff: i32(1), NormalStaff: i32(2), MaxStaff: i32(2), Priority: 90},
	{Code: "EC", Name: "Early Care", Description: "Watch early drop-off campers", Type: domain.FlowAMPM, MinStaff: i32(1), NormalStaff: i32(2), MaxStaff: i32(3), Priority: 80},
	{Code: "LC", Name: "Late Care", Description: "Watch late pick-up campers", Type: domain.FlowAMPM, MinStaff: i32(1), NormalStaff: i32(2), MaxStaff: i32(3), Priority: 70},
	{Code: "LOT", Name: "Parking Lot", Description: "Direct carpool traffic", Type: domain.FlowAMPM, MinStaff: i32(1), NormalStaff: i32(1), MaxStaff: i32(2), Priority: 60},
}

// SeedCampData inserts the full camp dataset. Safe to run on an empty
// database only; reruns will hit unique constraints and log the errors.
func SeedCampData(repo *repository.Repository) {
	for _, job := range lunchJobs {
		j := job
		if err := repo.CreateJob(&j); err != nil {
			slog.Error("failed to insert job", "code", j.Code, "error", err)
			continue
		}
	}
	for _, job := range ampmJobs {
		j := job
		if err := repo.CreateJob(&j); err != nil {
			slog.Error("failed to insert job", "code", j.Code, "error", err)
			continue
		}
	}
	slog.Info("job catalogs inserted", "lunch", len(lunchJobs), "ampm", len(ampmJobs))

	for _, s := range sessions {
		session := &domain.Session{Number: s.number, Name: s.name, Weeks: s.weeks}
		if err := repo.CreateSession(session); err != nil {
			slog.Error("failed to insert session", "name", s.name, "error", err)
			continue
		}

		staffCount := 0
		for _, g := range s.groups {
			group := &domain.Group{Name: g.name}
			if err := repo.CreateGroup(session.ID, group); err != nil {
				slog.Error("failed to insert group", "name", g.name, "error", err)
				continue
			}

			for _, member := range g.staff {
				staff := &domain.StaffRef{Name: member.name, GroupID: group.ID}
				if err := repo.CreateStaff(staff, member.role, member.gender); err != nil {
					slog.Error("failed to insert staff", "name", member.name, "error", err)
					continue
				}
				staffCount++
			}
		}

		slog.Info("session inserted", "name", s.name, "groups", len(s.groups), "staff", staffCount)
	}
}
