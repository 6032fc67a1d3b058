package service

import (
	"context"
	"time"

	"agriportal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. They keep just enough behavior for the
// service contracts: record-not-found surfaces as gorm.ErrRecordNotFound
// exactly like the real repositories.

type fakeRoleRepo struct {
	roles map[uuid.UUID]*model.Role
	perms map[uuid.UUID][]model.RolePermission
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{
		roles: make(map[uuid.UUID]*model.Role),
		perms: make(map[uuid.UUID][]model.RolePermission),
	}
}

func (f *fakeRoleRepo) addRole(role *model.Role) *model.Role {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	f.roles[role.ID] = role
	return role
}

func (f *fakeRoleRepo) Create(_ context.Context, role *model.Role) error {
	f.addRole(role)
	return nil
}

func (f *fakeRoleRepo) Update(_ context.Context, role *model.Role) error {
	f.roles[role.ID] = role
	return nil
}

func (f *fakeRoleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.roles, id)
	return nil
}

func (f *fakeRoleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Role, error) {
	role, ok := f.roles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *role
	return &copied, nil
}

func (f *fakeRoleRepo) FindByName(_ context.Context, name string) (*model.Role, error) {
	for _, role := range f.roles {
		if role.Name == name {
			copied := *role
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRoleRepo) ListAll(_ context.Context) ([]model.Role, error) {
	out := make([]model.Role, 0, len(f.roles))
	for _, role := range f.roles {
		out = append(out, *role)
	}
	return out, nil
}

func (f *fakeRoleRepo) ListPermissions(_ context.Context, roleID uuid.UUID) ([]model.RolePermission, error) {
	return append([]model.RolePermission(nil), f.perms[roleID]...), nil
}

func (f *fakeRoleRepo) ListAllPermissions(_ context.Context) ([]model.RolePermission, error) {
	var out []model.RolePermission
	for _, rows := range f.perms {
		out = append(out, rows...)
	}
	return out, nil
}

func (f *fakeRoleRepo) DeletePermissions(_ context.Context, roleID uuid.UUID) error {
	delete(f.perms, roleID)
	return nil
}

func (f *fakeRoleRepo) InsertPermissions(_ context.Context, rows []model.RolePermission) error {
	for _, row := range rows {
		f.perms[row.RoleID] = append(f.perms[row.RoleID], row)
	}
	return nil
}

func (f *fakeRoleRepo) MarkPermissionsSaved(_ context.Context, roleID uuid.UUID, at time.Time) error {
	role, ok := f.roles[roleID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	saved := at
	role.PermissionsSavedAt = &saved
	return nil
}

type fakeAuditRepo struct {
	entries []model.AuditLog
}

func (f *fakeAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) List(_ context.Context, _, _ int) ([]model.AuditLog, int64, error) {
	return append([]model.AuditLog(nil), f.entries...), int64(len(f.entries)), nil
}

// fakeTxManager runs the function directly; atomicity is the real
// manager's concern.
type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type fakeInspectionRepo struct {
	tasks map[uuid.UUID]*model.InspectionTask
}

func newFakeInspectionRepo() *fakeInspectionRepo {
	return &fakeInspectionRepo{tasks: make(map[uuid.UUID]*model.InspectionTask)}
}

func (f *fakeInspectionRepo) Create(_ context.Context, task *model.InspectionTask) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	task.CreatedAt = time.Now()
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeInspectionRepo) GetByID(_ context.Context, id uuid.UUID) (*model.InspectionTask, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *fakeInspectionRepo) GetByCode(_ context.Context, code string) (*model.InspectionTask, error) {
	for _, task := range f.tasks {
		if task.Code == code {
			copied := *task
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInspectionRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.tasks[id]
	return ok, nil
}

func (f *fakeInspectionRepo) List(_ context.Context, filter model.CaseFilter, _, _ int) ([]model.InspectionTask, int64, error) {
	var out []model.InspectionTask
	for _, task := range f.tasks {
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.District != "" && task.District != filter.District {
			continue
		}
		out = append(out, *task)
	}
	return out, int64(len(out)), nil
}

func (f *fakeInspectionRepo) Update(_ context.Context, task *model.InspectionTask) error {
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeInspectionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.tasks, id)
	return nil
}

type fakeFieldExecutionRepo struct {
	execs map[uuid.UUID]*model.FieldExecution
}

func newFakeFieldExecutionRepo() *fakeFieldExecutionRepo {
	return &fakeFieldExecutionRepo{execs: make(map[uuid.UUID]*model.FieldExecution)}
}

func (f *fakeFieldExecutionRepo) Create(_ context.Context, exec *model.FieldExecution) error {
	if exec.ID == uuid.Nil {
		exec.ID = uuid.New()
	}
	f.execs[exec.ID] = exec
	return nil
}

func (f *fakeFieldExecutionRepo) GetByID(_ context.Context, id uuid.UUID) (*model.FieldExecution, error) {
	exec, ok := f.execs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *exec
	return &copied, nil
}

func (f *fakeFieldExecutionRepo) GetByCode(_ context.Context, code string) (*model.FieldExecution, error) {
	for _, exec := range f.execs {
		if exec.FieldCode == code {
			copied := *exec
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFieldExecutionRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.execs[id]
	return ok, nil
}

func (f *fakeFieldExecutionRepo) List(_ context.Context, _ model.CaseFilter, _, _ int) ([]model.FieldExecution, int64, error) {
	var out []model.FieldExecution
	for _, exec := range f.execs {
		out = append(out, *exec)
	}
	return out, int64(len(out)), nil
}

func (f *fakeFieldExecutionRepo) Update(_ context.Context, exec *model.FieldExecution) error {
	f.execs[exec.ID] = exec
	return nil
}

func (f *fakeFieldExecutionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.execs, id)
	return nil
}

func (f *fakeFieldExecutionRepo) CountByInspection(_ context.Context, inspectionID uuid.UUID) (int64, error) {
	var n int64
	for _, exec := range f.execs {
		if exec.InspectionID == inspectionID {
			n++
		}
	}
	return n, nil
}

type fakeSeizureRepo struct {
	seizures map[uuid.UUID]*model.Seizure
}

func newFakeSeizureRepo() *fakeSeizureRepo {
	return &fakeSeizureRepo{seizures: make(map[uuid.UUID]*model.Seizure)}
}

func (f *fakeSeizureRepo) Create(_ context.Context, seizure *model.Seizure) error {
	if seizure.ID == uuid.Nil {
		seizure.ID = uuid.New()
	}
	f.seizures[seizure.ID] = seizure
	return nil
}

func (f *fakeSeizureRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Seizure, error) {
	seizure, ok := f.seizures[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *seizure
	return &copied, nil
}

func (f *fakeSeizureRepo) GetByCode(_ context.Context, code string) (*model.Seizure, error) {
	for _, seizure := range f.seizures {
		if seizure.SeizureCode == code {
			copied := *seizure
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSeizureRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.seizures[id]
	return ok, nil
}

func (f *fakeSeizureRepo) List(_ context.Context, _ model.CaseFilter, _, _ int) ([]model.Seizure, int64, error) {
	var out []model.Seizure
	for _, seizure := range f.seizures {
		out = append(out, *seizure)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSeizureRepo) Update(_ context.Context, seizure *model.Seizure) error {
	f.seizures[seizure.ID] = seizure
	return nil
}

func (f *fakeSeizureRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.seizures, id)
	return nil
}

func (f *fakeSeizureRepo) CountByFieldExecution(_ context.Context, fieldExecutionID uuid.UUID) (int64, error) {
	var n int64
	for _, seizure := range f.seizures {
		if seizure.FieldExecutionID == fieldExecutionID {
			n++
		}
	}
	return n, nil
}

type fakeLabSampleRepo struct {
	samples map[uuid.UUID]*model.LabSample
}

func newFakeLabSampleRepo() *fakeLabSampleRepo {
	return &fakeLabSampleRepo{samples: make(map[uuid.UUID]*model.LabSample)}
}

func (f *fakeLabSampleRepo) Create(_ context.Context, sample *model.LabSample) error {
	if sample.ID == uuid.Nil {
		sample.ID = uuid.New()
	}
	f.samples[sample.ID] = sample
	return nil
}

func (f *fakeLabSampleRepo) GetByID(_ context.Context, id uuid.UUID) (*model.LabSample, error) {
	sample, ok := f.samples[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *sample
	return &copied, nil
}

func (f *fakeLabSampleRepo) GetByCode(_ context.Context, code string) (*model.LabSample, error) {
	for _, sample := range f.samples {
		if sample.SampleCode == code {
			copied := *sample
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLabSampleRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.samples[id]
	return ok, nil
}

func (f *fakeLabSampleRepo) List(_ context.Context, _ model.CaseFilter, _, _ int) ([]model.LabSample, int64, error) {
	var out []model.LabSample
	for _, sample := range f.samples {
		out = append(out, *sample)
	}
	return out, int64(len(out)), nil
}

func (f *fakeLabSampleRepo) Update(_ context.Context, sample *model.LabSample) error {
	f.samples[sample.ID] = sample
	return nil
}

func (f *fakeLabSampleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.samples, id)
	return nil
}

func (f *fakeLabSampleRepo) CountBySeizure(_ context.Context, seizureID uuid.UUID) (int64, error) {
	var n int64
	for _, sample := range f.samples {
		if sample.SeizureID == seizureID {
			n++
		}
	}
	return n, nil
}

type fakeFIRCaseRepo struct {
	cases map[uuid.UUID]*model.FIRCase
}

func newFakeFIRCaseRepo() *fakeFIRCaseRepo {
	return &fakeFIRCaseRepo{cases: make(map[uuid.UUID]*model.FIRCase)}
}

func (f *fakeFIRCaseRepo) Create(_ context.Context, firCase *model.FIRCase) error {
	if firCase.ID == uuid.Nil {
		firCase.ID = uuid.New()
	}
	f.cases[firCase.ID] = firCase
	return nil
}

func (f *fakeFIRCaseRepo) GetByID(_ context.Context, id uuid.UUID) (*model.FIRCase, error) {
	firCase, ok := f.cases[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *firCase
	return &copied, nil
}

func (f *fakeFIRCaseRepo) GetByCode(_ context.Context, code string) (*model.FIRCase, error) {
	for _, firCase := range f.cases {
		if firCase.FIRCode == code {
			copied := *firCase
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFIRCaseRepo) List(_ context.Context, _ model.CaseFilter, _, _ int) ([]model.FIRCase, int64, error) {
	var out []model.FIRCase
	for _, firCase := range f.cases {
		out = append(out, *firCase)
	}
	return out, int64(len(out)), nil
}

func (f *fakeFIRCaseRepo) Update(_ context.Context, firCase *model.FIRCase) error {
	f.cases[firCase.ID] = firCase
	return nil
}

func (f *fakeFIRCaseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.cases, id)
	return nil
}

func (f *fakeFIRCaseRepo) CountBySeizure(_ context.Context, seizureID uuid.UUID) (int64, error) {
	var n int64
	for _, firCase := range f.cases {
		if firCase.SeizureID != nil && *firCase.SeizureID == seizureID {
			n++
		}
	}
	return n, nil
}

func (f *fakeFIRCaseRepo) CountByLabSample(_ context.Context, labSampleID uuid.UUID) (int64, error) {
	var n int64
	for _, firCase := range f.cases {
		if firCase.LabSampleID != nil && *firCase.LabSampleID == labSampleID {
			n++
		}
	}
	return n, nil
}
