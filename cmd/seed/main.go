package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"studyhall/internal/seats"
	"studyhall/internal/shared/config"
	"studyhall/internal/shared/database"
	"studyhall/internal/shifts"
	"studyhall/pkg/logger"
)

var sections = []string{"A", "B", "C", "D", "E"}

const (
	tablesPerSection = 8
	chairsPerTable   = 6
	staffPerSection  = 8
	lockerCount      = 40
	lockersPerRow    = 10
	lockerSection    = "L"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.GetDefault().Debug("no .env file found, using environment")
	}

	cfg := config.Load()
	log := logger.New()
	logger.SetDefault(log)

	conns, err := database.Init(cfg)
	if err != nil {
		log.WithError(err).Error("failed to initialize database")
		os.Exit(1)
	}
	defer conns.Close()

	if err := database.MigrateRegistry(conns.DB); err != nil {
		log.WithError(err).Error("failed to migrate registry schema")
		os.Exit(1)
	}

	ctx := context.Background()
	seatRepo := seats.NewRepository(conns.DB)
	shiftRepo := shifts.NewRepository(conns.DB)

	if err := seedSeats(ctx, seatRepo, log); err != nil {
		log.WithError(err).Error("seat seeding failed")
		os.Exit(1)
	}
	if err := seedShifts(ctx, shiftRepo, log); err != nil {
		log.WithError(err).Error("shift seeding failed")
		os.Exit(1)
	}

	log.Info("seeding complete")
}

// seedSeats provisions the full floor plan: per section, 8 tables of 6
// chairs plus 8 staff seats, and a locker wall. Existing seat numbers are
// left untouched so the seeder can run repeatedly.
func seedSeats(ctx context.Context, repo seats.Repository, log *logger.Logger) error {
	plan := buildSeatPlan()

	numbers := make([]string, 0, len(plan))
	for _, seat := range plan {
		numbers = append(numbers, seat.SeatNumber)
	}
	existing, err := repo.CountBySeatNumbers(ctx, numbers)
	if err != nil {
		return err
	}
	if existing == int64(len(plan)) {
		log.Info("seats already seeded", "count", existing)
		return nil
	}

	created := 0
	for i := range plan {
		if _, err := repo.GetBySeatNumber(ctx, plan[i].SeatNumber); err == nil {
			continue
		}
		if err := repo.Create(ctx, &plan[i]); err != nil {
			return fmt.Errorf("failed to create seat %s: %w", plan[i].SeatNumber, err)
		}
		created++
	}

	log.Info("seats seeded", "created", created, "total", len(plan))
	return nil
}

func buildSeatPlan() []seats.Seat {
	var plan []seats.Seat
	for _, section := range sections {
		for table := 1; table <= tablesPerSection; table++ {
			for chair := 1; chair <= chairsPerTable; chair++ {
				plan = append(plan, seats.Seat{
					SeatNumber: fmt.Sprintf("%s-%d-%d", section, table, chair),
					Section:    section,
					RowNumber:  table,
					ColNumber:  chair,
					SeatType:   seats.SeatTypeStandard,
					Status:     seats.StatusAvailable,
					Active:     true,
				})
			}
		}
		for i := 1; i <= staffPerSection; i++ {
			plan = append(plan, seats.Seat{
				SeatNumber: fmt.Sprintf("%s-S%d", section, i),
				Section:    section,
				RowNumber:  tablesPerSection + 1,
				ColNumber:  i,
				SeatType:   seats.SeatTypeStaff,
				Status:     seats.StatusAvailable,
				Active:     true,
			})
		}
	}
	for i := 1; i <= lockerCount; i++ {
		plan = append(plan, seats.Seat{
			SeatNumber: fmt.Sprintf("%s-%d", lockerSection, i),
			Section:    lockerSection,
			RowNumber:  (i-1)/lockersPerRow + 1,
			ColNumber:  (i-1)%lockersPerRow + 1,
			SeatType:   seats.SeatTypeLocker,
			Status:     seats.StatusAvailable,
			Active:     true,
		})
	}
	return plan
}

func seedShifts(ctx context.Context, repo shifts.Repository, log *logger.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info("shifts already seeded", "count", count)
		return nil
	}

	plan := []shifts.Shift{
		{Name: "Morning", StartTime: "06:00", EndTime: "12:00", BasePrice: 50.00, Description: "Morning study shift", Active: true},
		{Name: "Afternoon", StartTime: "12:00", EndTime: "18:00", BasePrice: 60.00, Description: "Afternoon study shift", Active: true},
		{Name: "Evening", StartTime: "18:00", EndTime: "23:00", BasePrice: 70.00, Description: "Evening study shift", Active: true},
		{Name: "Full Day", StartTime: "06:00", EndTime: "23:00", BasePrice: 150.00, Description: "Full day access", Active: true},
	}

	for i := range plan {
		if err := repo.Create(ctx, &plan[i]); err != nil {
			return fmt.Errorf("failed to create shift %s: %w", plan[i].Name, err)
		}
	}

	log.Info("shifts seeded", "count", len(plan))
	return nil
}
