package service

import (
	"context"
	"testing"

	"agriportal/internal/auth"
	"agriportal/internal/model"
	"agriportal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type caseFixture struct {
	inspections InspectionService
	executions  FieldExecutionService
	seizures    SeizureService
	samples     LabSampleService
	firCases    FIRCaseService

	owner    auth.Actor
	stranger auth.Actor
	elevated auth.Actor
}

func newCaseFixture(t *testing.T) *caseFixture {
	t.Helper()

	roleRepo, auditRepo, perms := newPermFixture()
	guard := NewOwnershipGuard(perms)

	plain := configuredRole(roleRepo, map[string]string{
		model.MenuInspectionPlanning: model.AuthFull,
		model.MenuFieldExecution:     model.AuthFull,
		model.MenuSeizureManagement:  model.AuthFull,
		model.MenuLabSamples:         model.AuthFull,
		model.MenuLegalModule:        model.AuthFull,
	})
	supervisor := roleRepo.addRole(&model.Role{Name: "supervisor", IsElevated: true})
	_ = roleRepo.MarkPermissionsSaved(context.Background(), supervisor.ID, supervisor.CreatedAt)

	inspectionRepo := newFakeInspectionRepo()
	fieldRepo := newFakeFieldExecutionRepo()
	seizureRepo := newFakeSeizureRepo()
	sampleRepo := newFakeLabSampleRepo()
	firRepo := newFakeFIRCaseRepo()

	return &caseFixture{
		inspections: NewInspectionService(inspectionRepo, fieldRepo, guard, auditRepo, nil),
		executions:  NewFieldExecutionService(fieldRepo, inspectionRepo, seizureRepo, guard, auditRepo, nil),
		seizures:    NewSeizureService(seizureRepo, fieldRepo, sampleRepo, firRepo, guard, auditRepo, nil),
		samples:     NewLabSampleService(sampleRepo, seizureRepo, firRepo, guard, auditRepo, nil),
		firCases:    NewFIRCaseService(firRepo, sampleRepo, seizureRepo, guard, auditRepo, nil),
		owner:       auth.Actor{UserID: uuid.New(), RoleID: plain.ID},
		stranger:    auth.Actor{UserID: uuid.New(), RoleID: plain.ID},
		elevated:    auth.Actor{UserID: uuid.New(), RoleID: supervisor.ID},
	}
}

func (f *caseFixture) seedChain(t *testing.T) (*model.InspectionTask, *model.FieldExecution, *model.Seizure, *model.LabSample) {
	t.Helper()
	ctx := context.Background()

	inspection, err := f.inspections.Create(ctx, f.owner, CreateInspectionRequest{
		Code:     "INS-001",
		District: "Nashik",
	})
	require.NoError(t, err)

	execution, err := f.executions.Create(ctx, f.owner, CreateFieldExecutionRequest{
		FieldCode:    "FE-001",
		InspectionID: inspection.ID.String(),
		District:     "Nashik",
		CompanyName:  "AgroChem Ltd",
	})
	require.NoError(t, err)

	seizure, err := f.seizures.Create(ctx, f.owner, CreateSeizureRequest{
		SeizureCode:      "SZ-001",
		FieldExecutionID: execution.ID.String(),
		District:         "Nashik",
		Quantity:         "120.5",
		QuantityUnit:     "kg",
		EstimatedValue:   "45000",
	})
	require.NoError(t, err)

	sample, err := f.samples.Create(ctx, f.owner, CreateLabSampleRequest{
		SampleCode: "LS-001",
		SeizureID:  seizure.ID.String(),
		District:   "Nashik",
		Department: "State Pesticide Lab",
	})
	require.NoError(t, err)

	return inspection, execution, seizure, sample
}

func TestChainCreation(t *testing.T) {
	f := newCaseFixture(t)
	ctx := context.Background()

	inspection, execution, seizure, sample := f.seedChain(t)

	assert.Equal(t, f.owner.UserID, inspection.UserID)
	assert.Equal(t, model.InspectionScheduled, inspection.Status)
	assert.Equal(t, inspection.ID, execution.InspectionID)
	assert.Equal(t, execution.ID, seizure.FieldExecutionID)
	assert.Equal(t, model.SeizurePending, seizure.Status)
	assert.Equal(t, seizure.ID, sample.SeizureID)
	assert.Equal(t, model.SamplePending, sample.Status)

	firCase, err := f.firCases.Create(ctx, f.owner, CreateFIRCaseRequest{
		FIRCode:     "FIR-001",
		LabSampleID: sample.ID.String(),
		SeizureID:   seizure.ID.String(),
		AccusedName: "Dealer X",
	})
	require.NoError(t, err)
	assert.Equal(t, model.FIRDraft, firCase.Status)
	require.NotNil(t, firCase.LabSampleID)
	assert.Equal(t, sample.ID, *firCase.LabSampleID)
}

func TestNoOrphansInTheChain(t *testing.T) {
	f := newCaseFixture(t)
	ctx := context.Background()

	_, err := f.executions.Create(ctx, f.owner, CreateFieldExecutionRequest{
		FieldCode:    "FE-X",
		InspectionID: uuid.New().String(),
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.seizures.Create(ctx, f.owner, CreateSeizureRequest{
		SeizureCode:      "SZ-X",
		FieldExecutionID: uuid.New().String(),
		Quantity:         "1",
		EstimatedValue:   "1",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.samples.Create(ctx, f.owner, CreateLabSampleRequest{
		SampleCode: "LS-X",
		SeizureID:  uuid.New().String(),
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestFIRCaseLinksAreOptionalButMustResolve(t *testing.T) {
	f := newCaseFixture(t)
	ctx := context.Background()

	// External complaint: no upstream records at all
	firCase, err := f.firCases.Create(ctx, f.owner, CreateFIRCaseRequest{
		FIRCode:       "FIR-EXT",
		ViolationType: "unlicensed sale",
	})
	require.NoError(t, err)
	assert.Nil(t, firCase.LabSampleID)
	assert.Nil(t, firCase.SeizureID)

	// A supplied link that does not resolve is rejected
	_, err = f.firCases.Create(ctx, f.owner, CreateFIRCaseRequest{
		FIRCode:     "FIR-BAD",
		LabSampleID: uuid.New().String(),
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDuplicateCodesConflict(t *testing.T) {
	f := newCaseFixture(t)
	ctx := context.Background()

	f.seedChain(t)

	_, err := f.inspections.Create(ctx, f.owner, CreateInspectionRequest{
		Code:     "INS-001",
		District: "Pune",
	})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestStatusVocabulary(t *testing.T) {
	f := newCaseFixture(t)
	ctx := context.Background()

	inspection, _, _, _ := f.seedChain(t)

	_, err := f.inspections.Create(ctx, f.owner, CreateInspectionRequest{
		Code:     "INS-002",
		District: "Pune",
		Status:   "paused",
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = f.inspections.Update(ctx, f.owner, UpdateInspectionRequest{
		ID:     inspection.ID.String(),
		Status: "bogus",
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	// Any vocabulary value is writable, there is no transition graph
	updated, err := f.inspections.Update(ctx, f.owner, UpdateInspectionRequest{
		ID:     inspection.ID.String(),
		Status: model.InspectionCancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, model.InspectionCancelled, updated.Status)

	_, _, err = f.inspections.List(ctx, model.CaseFilter{Status: "bogus"}, 1, 20)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestOwnershipOnMutation(t *testing.T) {
	f := newCaseFixture(t)
	ctx := context.Background()

	inspection, _, _, _ := f.seedChain(t)

	_, err := f.inspections.Update(ctx, f.stranger, UpdateInspectionRequest{
		ID:      inspection.ID.String(),
		Remarks: "tampered",
	})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = f.inspections.Update(ctx, f.elevated, UpdateInspectionRequest{
		ID:      inspection.ID.String(),
		Remarks: "supervisor note",
	})
	assert.NoError(t, err)
}

func TestDeleteIsRestrictedByChildren(t *testing.T) {
	f := newCaseFixture(t)
	ctx := context.Background()

	inspection, execution, seizure, sample := f.seedChain(t)

	firCase, err := f.firCases.Create(ctx, f.owner, CreateFIRCaseRequest{
		FIRCode:     "FIR-001",
		LabSampleID: sample.ID.String(),
	})
	require.NoError(t, err)

	// Every delete is rejected while a downstream record exists
	assert.ErrorIs(t, f.inspections.Delete(ctx, f.owner, inspection.ID.String()), apperror.ErrConflict)
	assert.ErrorIs(t, f.executions.Delete(ctx, f.owner, execution.ID.String()), apperror.ErrConflict)
	assert.ErrorIs(t, f.seizures.Delete(ctx, f.owner, seizure.ID.String()), apperror.ErrConflict)
	assert.ErrorIs(t, f.samples.Delete(ctx, f.owner, sample.ID.String()), apperror.ErrConflict)

	// Tearing down leaf-first succeeds
	require.NoError(t, f.firCases.Delete(ctx, f.owner, firCase.ID.String()))
	require.NoError(t, f.samples.Delete(ctx, f.owner, sample.ID.String()))
	require.NoError(t, f.seizures.Delete(ctx, f.owner, seizure.ID.String()))
	require.NoError(t, f.executions.Delete(ctx, f.owner, execution.ID.String()))
	require.NoError(t, f.inspections.Delete(ctx, f.owner, inspection.ID.String()))
}

func TestSeizureAmountsAreValidated(t *testing.T) {
	f := newCaseFixture(t)
	ctx := context.Background()

	inspection, execution, _, _ := f.seedChain(t)
	_ = inspection

	_, err := f.seizures.Create(ctx, f.owner, CreateSeizureRequest{
		SeizureCode:      "SZ-NEG",
		FieldExecutionID: execution.ID.String(),
		Quantity:         "-5",
		EstimatedValue:   "100",
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = f.seizures.Create(ctx, f.owner, CreateSeizureRequest{
		SeizureCode:      "SZ-NAN",
		FieldExecutionID: execution.ID.String(),
		Quantity:         "twelve",
		EstimatedValue:   "100",
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
