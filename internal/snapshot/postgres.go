// README: Postgres snapshot backend; replaces the whole snapshot in one transaction.
package snapshot

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) SaveUsers(ctx context.Context, records []UserRecord) error {
	return s.replace(ctx, "ridelink_users", func(tx pgx.Tx) error {
		for i, rec := range records {
			_, err := tx.Exec(ctx, `
				INSERT INTO ridelink_users (
					pos, id, role, name, contact_info, age, gender, rating, rating_count,
					car_model, car_plate, car_capacity, years_experience,
					payment_method, money_saved, distance_commuted
				) VALUES (
					$1, $2, $3, $4, $5, $6, $7, $8, $9,
					$10, $11, $12, $13,
					$14, $15, $16
				)`,
				i, rec.ID, rec.Role, rec.Name, rec.ContactInfo, rec.Age, rec.Gender,
				rec.Rating, rec.RatingCount,
				rec.CarModel, rec.CarPlate, rec.CarCapacity, rec.YearsExperience,
				rec.PaymentMethod, rec.MoneySaved, rec.DistanceCommuted,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *PostgresStore) LoadUsers(ctx context.Context) ([]UserRecord, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, role, name, contact_info, age, gender, rating, rating_count,
		       car_model, car_plate, car_capacity, years_experience,
		       payment_method, money_saved, distance_commuted
		FROM ridelink_users
		ORDER BY pos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []UserRecord
	for rows.Next() {
		var rec UserRecord
		if err := rows.Scan(
			&rec.ID, &rec.Role, &rec.Name, &rec.ContactInfo, &rec.Age, &rec.Gender,
			&rec.Rating, &rec.RatingCount,
			&rec.CarModel, &rec.CarPlate, &rec.CarCapacity, &rec.YearsExperience,
			&rec.PaymentMethod, &rec.MoneySaved, &rec.DistanceCommuted,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *PostgresStore) SaveTrips(ctx context.Context, records []TripRecord) error {
	return s.replace(ctx, "ridelink_trips", func(tx pgx.Tx) error {
		for i, rec := range records {
			_, err := tx.Exec(ctx, `
				INSERT INTO ridelink_trips (
					pos, trip_id, driver_id, origin_name, origin_area,
					dest_name, dest_area, departure_time, status, passenger_count
				) VALUES (
					$1, $2, $3, $4, $5,
					$6, $7, $8, $9, $10
				)`,
				i, rec.TripID, rec.DriverID, rec.OriginName, rec.OriginArea,
				rec.DestName, rec.DestArea, rec.DepartureTime, rec.Status, rec.PassengerCount,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *PostgresStore) LoadTrips(ctx context.Context) ([]TripRecord, error) {
	rows, err := s.db.Query(ctx, `
		SELECT trip_id, driver_id, origin_name, origin_area,
		       dest_name, dest_area, departure_time, status, passenger_count
		FROM ridelink_trips
		ORDER BY pos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []TripRecord
	for rows.Next() {
		var rec TripRecord
		if err := rows.Scan(
			&rec.TripID, &rec.DriverID, &rec.OriginName, &rec.OriginArea,
			&rec.DestName, &rec.DestArea, &rec.DepartureTime, &rec.Status, &rec.PassengerCount,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// replace deletes the previous snapshot table contents and reinserts inside
// a single transaction, so readers never observe a half-written snapshot.
func (s *PostgresStore) replace(ctx context.Context, table string, insert func(tx pgx.Tx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
		return err
	}
	if err := insert(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
