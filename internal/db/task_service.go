package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/balkashynov/tideflow/internal/models"
	"github.com/balkashynov/tideflow/internal/store"
)

// Get returns the tasks scheduled on date in insertion order
func (s *Store) Get(date string) ([]models.Task, error) {
	if err := store.CheckDate(date); err != nil {
		return nil, err
	}

	tasks := []models.Task{}
	if err := s.db.Where("scheduled_date = ?", date).Order("position ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", date, err)
	}
	return tasks, nil
}

// Put replaces the bucket for date inside one transaction
func (s *Store) Put(date string, tasks []models.Task) error {
	prepared, err := store.PrepareBucket(date, tasks)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(prepared) > 0 {
			ids := make([]string, len(prepared))
			for i, t := range prepared {
				ids[i] = t.ID
			}

			var taken []models.Task
			if err := tx.Select("id", "scheduled_date").
				Where("id IN ? AND scheduled_date <> ?", ids, date).
				Find(&taken).Error; err != nil {
				return err
			}
			if len(taken) > 0 {
				return fmt.Errorf("%w: %s already scheduled on %s", store.ErrDuplicateID, taken[0].ID, taken[0].ScheduledDate)
			}
		}

		if err := tx.Where("scheduled_date = ?", date).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if len(prepared) == 0 {
			return nil
		}
		return tx.Create(&prepared).Error
	})
	if err != nil {
		return err
	}

	s.log.Debugw("bucket stored", "date", date, "tasks", len(prepared))
	return nil
}

// PutAll replaces the listed buckets inside one transaction
func (s *Store) PutAll(buckets models.DayBuckets) error {
	prepared, err := store.PrepareBuckets(buckets)
	if err != nil {
		return err
	}
	if len(prepared) == 0 {
		return nil
	}

	dates := make([]string, 0, len(prepared))
	var rows []models.Task
	for date, tasks := range prepared {
		dates = append(dates, date)
		rows = append(rows, tasks...)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(rows) > 0 {
			ids := make([]string, len(rows))
			for i, t := range rows {
				ids[i] = t.ID
			}

			var taken []models.Task
			if err := tx.Select("id", "scheduled_date").
				Where("id IN ? AND scheduled_date NOT IN ?", ids, dates).
				Find(&taken).Error; err != nil {
				return err
			}
			if len(taken) > 0 {
				return fmt.Errorf("%w: %s already scheduled on %s", store.ErrDuplicateID, taken[0].ID, taken[0].ScheduledDate)
			}
		}

		if err := tx.Where("scheduled_date IN ?", dates).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(&rows, 100).Error
	})
	if err != nil {
		return err
	}

	s.log.Debugw("buckets stored", "days", len(dates), "tasks", len(rows))
	return nil
}

// Move reschedules a pending task and appends its successor to toDate
func (s *Store) Move(taskID, fromDate, toDate, notes string) (models.Task, error) {
	if err := store.CheckDate(fromDate); err != nil {
		return models.Task{}, err
	}

	var successor models.Task
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var src models.Task
		err := tx.Where("id = ? AND scheduled_date = ?", taskID, fromDate).First(&src).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s on %s", store.ErrTaskNotFound, taskID, fromDate)
		}
		if err != nil {
			return err
		}

		newID := s.newID()
		var clash int64
		if err := tx.Model(&models.Task{}).Where("id = ?", newID).Count(&clash).Error; err != nil {
			return err
		}
		if clash > 0 {
			return fmt.Errorf("%w: %s", store.ErrDuplicateID, newID)
		}

		tagged, next, err := store.Reschedule(src, toDate, notes, newID)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Task{}).Where("scheduled_date = ?", toDate).Count(&count).Error; err != nil {
			return err
		}
		next.Position = int(count)

		if err := tx.Save(&tagged).Error; err != nil {
			return err
		}
		if err := tx.Create(&next).Error; err != nil {
			return err
		}
		successor = next
		return nil
	})
	if err != nil {
		return models.Task{}, err
	}

	s.log.Infow("task rescheduled", "task", taskID, "from", fromDate, "to", toDate, "successor", successor.ID)
	return successor, nil
}

// Dates lists every day that has at least one task
func (s *Store) Dates() ([]string, error) {
	var dates []string
	err := s.db.Model(&models.Task{}).
		Distinct("scheduled_date").
		Order("scheduled_date ASC").
		Pluck("scheduled_date", &dates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list dates: %w", err)
	}
	return dates, nil
}

// Snapshot loads every bucket
func (s *Store) Snapshot() (models.DayBuckets, error) {
	var tasks []models.Task
	if err := s.db.Order("scheduled_date ASC").Order("position ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	buckets := models.DayBuckets{}
	for _, t := range tasks {
		buckets[t.ScheduledDate] = append(buckets[t.ScheduledDate], t)
	}
	return buckets, nil
}
