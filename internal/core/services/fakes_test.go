package services

import (
	"context"
	"fmt"
	"time"

	"lawdesk-erp/internal/adapters/persistence/models"
	"lawdesk-erp/internal/adapters/persistence/repositories"
	"lawdesk-erp/internal/pkg/pagination"

	"gorm.io/gorm"
)

func testParams() *pagination.Params {
	return &pagination.Params{Page: 1, Limit: pagination.DefaultLimit}
}

// ============================================================
// In-memory fakes behind the repository interfaces
// ============================================================

func dayKey(employeeID uint, workDate time.Time) string {
	return fmt.Sprintf("%d|%s", employeeID, workDate.Format("2006-01-02"))
}

type fakeAttendanceRepo struct {
	nextID  uint
	records map[string]*models.AttendanceRecord
	byID    map[uint]*models.AttendanceRecord
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		records: make(map[string]*models.AttendanceRecord),
		byID:    make(map[uint]*models.AttendanceRecord),
	}
}

func (f *fakeAttendanceRepo) Create(_ context.Context, record *models.AttendanceRecord) error {
	key := dayKey(record.EmployeeID, record.WorkDate)
	if _, exists := f.records[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	f.nextID++
	record.ID = f.nextID
	stored := *record
	f.records[key] = &stored
	f.byID[record.ID] = &stored
	return nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID uint, workDate time.Time) (*models.AttendanceRecord, error) {
	record, ok := f.records[dayKey(employeeID, workDate)]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (f *fakeAttendanceRepo) SetCheckOut(_ context.Context, recordID uint, t time.Time) (int64, error) {
	record, ok := f.byID[recordID]
	if !ok || record.CheckOutTime != nil {
		return 0, nil
	}
	record.CheckOutTime = &t
	return 1, nil
}

func (f *fakeAttendanceRepo) ListByEmployee(_ context.Context, employeeID uint, _, _ int) ([]models.AttendanceRecord, int64, error) {
	var out []models.AttendanceRecord
	for _, r := range f.records {
		if r.EmployeeID == employeeID {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) ListByDate(_ context.Context, workDate time.Time) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	for _, r := range f.records {
		if r.WorkDate.Equal(workDate) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListMissingCheckOut(_ context.Context, workDate time.Time) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	for _, r := range f.records {
		if r.WorkDate.Equal(workDate) && r.CheckInTime != nil && r.CheckOutTime == nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) DeleteRange(_ context.Context, from, to time.Time) (int64, error) {
	var deleted int64
	for key, r := range f.records {
		if !r.WorkDate.Before(from) && !r.WorkDate.After(to) {
			delete(f.records, key)
			delete(f.byID, r.ID)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeAttendanceRepo) CountByDate(_ context.Context, workDate time.Time) (int64, int64, error) {
	var checkedIn, checkedOut int64
	for _, r := range f.records {
		if !r.WorkDate.Equal(workDate) {
			continue
		}
		if r.CheckInTime != nil {
			checkedIn++
		}
		if r.CheckOutTime != nil {
			checkedOut++
		}
	}
	return checkedIn, checkedOut, nil
}

type fakeNetworkRepo struct {
	networks []models.OfficeNetwork
}

func (f *fakeNetworkRepo) Create(_ context.Context, network *models.OfficeNetwork) error {
	network.ID = uint(len(f.networks) + 1)
	f.networks = append(f.networks, *network)
	return nil
}

func (f *fakeNetworkRepo) GetByID(_ context.Context, id uint) (*models.OfficeNetwork, error) {
	for i := range f.networks {
		if f.networks[i].ID == id {
			copied := f.networks[i]
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNetworkRepo) Update(_ context.Context, network *models.OfficeNetwork) error {
	for i := range f.networks {
		if f.networks[i].ID == network.ID {
			f.networks[i] = *network
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeNetworkRepo) Delete(_ context.Context, id uint) error {
	for i := range f.networks {
		if f.networks[i].ID == id {
			f.networks = append(f.networks[:i], f.networks[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeNetworkRepo) List(_ context.Context) ([]models.OfficeNetwork, error) {
	return append([]models.OfficeNetwork(nil), f.networks...), nil
}

func (f *fakeNetworkRepo) ListEnabled(_ context.Context) ([]models.OfficeNetwork, error) {
	var out []models.OfficeNetwork
	for _, n := range f.networks {
		if n.Status == models.NetworkEnabled {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[uint]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[uint]*models.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = uint(len(f.users) + 1)
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByEmpNo(_ context.Context, empNo string) (*models.User, error) {
	for _, u := range f.users {
		if u.EmpNo == empNo {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uint) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range f.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ExistsByEmpNo(_ context.Context, empNo string) (bool, error) {
	for _, u := range f.users {
		if u.EmpNo == empNo {
			return true, nil
		}
	}
	return false, nil
}

type fakeRequestRepo struct {
	nextID   uint
	requests map[uint]*models.AttendanceRequest
	records  *fakeAttendanceRepo
}

func newFakeRequestRepo(records *fakeAttendanceRepo) *fakeRequestRepo {
	return &fakeRequestRepo{
		requests: make(map[uint]*models.AttendanceRequest),
		records:  records,
	}
}

func (f *fakeRequestRepo) Create(_ context.Context, request *models.AttendanceRequest) error {
	f.nextID++
	request.ID = f.nextID
	stored := *request
	f.requests[request.ID] = &stored
	return nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id uint) (*models.AttendanceRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *request
	return &copied, nil
}

func (f *fakeRequestRepo) Accept(ctx context.Context, request *models.AttendanceRequest, approverID uint, now time.Time) (bool, error) {
	stored, ok := f.requests[request.ID]
	if !ok || stored.Status != models.RequestPending {
		return false, nil
	}

	stored.Status = models.RequestAccepted
	stored.ResolvedBy = &approverID
	stored.ResolvedAt = &now

	key := dayKey(request.EmployeeID, request.TargetDate)
	record, exists := f.records.records[key]
	if !exists {
		created := &models.AttendanceRecord{
			EmployeeID:   request.EmployeeID,
			WorkDate:     request.TargetDate,
			CheckInTime:  request.ProposedCheckIn,
			CheckOutTime: request.ProposedCheckOut,
		}
		if err := f.records.Create(ctx, created); err != nil {
			return false, err
		}
		return true, nil
	}

	if request.ProposedCheckIn != nil {
		record.CheckInTime = request.ProposedCheckIn
	}
	if request.ProposedCheckOut != nil {
		record.CheckOutTime = request.ProposedCheckOut
	}
	return true, nil
}

func (f *fakeRequestRepo) Reject(_ context.Context, requestID uint, approverID uint, now time.Time) (bool, error) {
	stored, ok := f.requests[requestID]
	if !ok || stored.Status != models.RequestPending {
		return false, nil
	}
	stored.Status = models.RequestRejected
	stored.ResolvedBy = &approverID
	stored.ResolvedAt = &now
	return true, nil
}

func (f *fakeRequestRepo) ListByEmployee(_ context.Context, employeeID uint, _, _ int) ([]models.AttendanceRequest, int64, error) {
	var out []models.AttendanceRequest
	for _, r := range f.requests {
		if r.EmployeeID == employeeID {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRequestRepo) List(_ context.Context, status string, _, _ int) ([]models.AttendanceRequest, int64, error) {
	var out []models.AttendanceRequest
	for _, r := range f.requests {
		if status == "" || r.Status == status {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRequestRepo) CountPending(_ context.Context) (int64, error) {
	var count int64
	for _, r := range f.requests {
		if r.Status == models.RequestPending {
			count++
		}
	}
	return count, nil
}

type fakeRewardRepo struct {
	nextID  uint
	rewards map[uint]*models.Reward
	entries []models.RewardTransaction
}

func newFakeRewardRepo() *fakeRewardRepo {
	return &fakeRewardRepo{rewards: make(map[uint]*models.Reward)}
}

func (f *fakeRewardRepo) Create(_ context.Context, reward *models.Reward, performedBy uint) error {
	f.nextID++
	reward.ID = f.nextID
	stored := *reward
	f.rewards[reward.ID] = &stored
	f.entries = append(f.entries, models.RewardTransaction{
		RewardID:    reward.ID,
		TxType:      models.RewardTxDeposit,
		Amount:      reward.CurrentAmount,
		PerformedBy: performedBy,
	})
	return nil
}

func (f *fakeRewardRepo) GetByID(_ context.Context, id uint) (*models.Reward, error) {
	reward, ok := f.rewards[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *reward
	return &copied, nil
}

func (f *fakeRewardRepo) List(_ context.Context, _, _ int) ([]models.Reward, int64, error) {
	var out []models.Reward
	for _, r := range f.rewards {
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRewardRepo) Deduct(_ context.Context, rewardID uint, amount float64, description string, performedBy uint) (bool, error) {
	reward, ok := f.rewards[rewardID]
	if !ok || reward.Status != models.RewardActive || reward.CurrentAmount < amount {
		return false, nil
	}
	reward.CurrentAmount -= amount
	f.entries = append(f.entries, models.RewardTransaction{
		RewardID:    rewardID,
		TxType:      models.RewardTxDeduct,
		Amount:      amount,
		Description: description,
		PerformedBy: performedBy,
	})
	return true, nil
}

func (f *fakeRewardRepo) CloseOut(_ context.Context, rewardID uint, now time.Time) (bool, error) {
	reward, ok := f.rewards[rewardID]
	if !ok || reward.Status != models.RewardActive {
		return false, nil
	}
	reward.Status = models.RewardClosed
	reward.CashedOutAt = &now
	return true, nil
}

func (f *fakeRewardRepo) UpdateActive(_ context.Context, rewardID uint, updates map[string]interface{}) (bool, error) {
	reward, ok := f.rewards[rewardID]
	if !ok || reward.Status != models.RewardActive {
		return false, nil
	}
	if name, ok := updates["name"].(string); ok {
		reward.Name = name
	}
	if desc, ok := updates["description"].(string); ok {
		reward.Description = desc
	}
	if end, ok := updates["end_date"].(time.Time); ok {
		reward.EndDate = &end
	}
	return true, nil
}

func (f *fakeRewardRepo) Delete(_ context.Context, rewardID uint) error {
	delete(f.rewards, rewardID)
	return nil
}

func (f *fakeRewardRepo) ListTransactions(_ context.Context, rewardID uint) ([]models.RewardTransaction, error) {
	var out []models.RewardTransaction
	for _, e := range f.entries {
		if e.RewardID == rewardID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRewardRepo) ActiveStats(_ context.Context) (int64, float64, error) {
	var count int64
	var total float64
	for _, r := range f.rewards {
		if r.Status == models.RewardActive {
			count++
			total += r.CurrentAmount
		}
	}
	return count, total, nil
}

type fakeTaskRepo struct {
	byEmployee map[uint]repositories.TaskCounts
	all        []repositories.EmployeeTaskCounts
}

func (f *fakeTaskRepo) CountsByEmployee(_ context.Context, employeeID uint, _, _ time.Time) (*repositories.TaskCounts, error) {
	counts := f.byEmployee[employeeID]
	return &counts, nil
}

func (f *fakeTaskRepo) CountsForAll(_ context.Context, _, _ time.Time) ([]repositories.EmployeeTaskCounts, error) {
	return append([]repositories.EmployeeTaskCounts(nil), f.all...), nil
}
