package repositories

import (
	"context"
	"time"

	"lawdesk-erp/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// taskRepository implements TaskRepository interface. Tasks are owned by
// the case-services side; this repository only aggregates.
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// countsSelect aggregates the score inputs in one pass. A task counts as
// overdue when it is past due and not completed, or was completed after
// its due date.
const countsSelect = `
COUNT(*) AS total,
SUM(CASE WHEN status = 'COMPLETED' THEN 1 ELSE 0 END) AS completed,
SUM(CASE WHEN (status <> 'COMPLETED' AND due_date < ?) OR (completed_at IS NOT NULL AND completed_at > due_date) THEN 1 ELSE 0 END) AS overdue,
SUM(CASE WHEN status = 'COMPLETED' AND completed_at <= due_date THEN 1 ELSE 0 END) AS on_time`

// CountsByEmployee returns one employee's aggregates over [from, to]
func (r *taskRepository) CountsByEmployee(ctx context.Context, employeeID uint, from, to time.Time) (*TaskCounts, error) {
	var row struct {
		Total     int64
		Completed int64
		Overdue   int64
		OnTime    int64
	}

	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Select(countsSelect, time.Now()).
		Where("employee_id = ? AND due_date >= ? AND due_date <= ?", employeeID, from, to).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &TaskCounts{
		Total:     row.Total,
		Completed: row.Completed,
		Overdue:   row.Overdue,
		OnTime:    row.OnTime,
	}, nil
}

// CountsForAll returns aggregates for every employee with tasks in the
// window, joined with the directory for display names
func (r *taskRepository) CountsForAll(ctx context.Context, from, to time.Time) ([]EmployeeTaskCounts, error) {
	var rows []struct {
		EmployeeID uint
		FullName   string
		Total      int64
		Completed  int64
		Overdue    int64
		OnTime     int64
	}

	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Select("tasks.employee_id AS employee_id, users.full_name AS full_name, "+countsSelect, time.Now()).
		Joins("JOIN users ON users.id = tasks.employee_id").
		Where("tasks.due_date >= ? AND tasks.due_date <= ?", from, to).
		Group("tasks.employee_id, users.full_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make([]EmployeeTaskCounts, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, EmployeeTaskCounts{
			EmployeeID: row.EmployeeID,
			FullName:   row.FullName,
			TaskCounts: TaskCounts{
				Total:     row.Total,
				Completed: row.Completed,
				Overdue:   row.Overdue,
				OnTime:    row.OnTime,
			},
		})
	}
	return counts, nil
}
