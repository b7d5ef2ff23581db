package adapters

import (
	"github.com/de-tools/audit-atlas/pkg/models/api"
	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/models/store"
)

func MapStoreFindingToDomain(f store.Finding) domain.Finding {
	return domain.Finding{
		ID:               f.ID,
		AuditPlanID:      f.AuditPlanID,
		Statement:        f.Statement,
		Requirement:      f.Requirement,
		Evidence:         f.Evidence,
		Type:             domain.FindingType(f.FindingType),
		StandardClause:   f.StandardClause,
		ClauseNumber:     f.ClauseNumber,
		Area:             f.Area,
		Auditor:          f.Auditor,
		Auditee:          f.Auditee,
		CreatedAt:        f.CreatedAt,
		Status:           domain.FindingStatus(f.Status),
		Deadline:         f.Deadline,
		AttachmentName:   f.AttachmentName,
		RejectionRemarks: f.RejectionRemarks,
		AuditType:        domain.AuditType(f.AuditType),
		ProcessName:      f.ProcessName,
		IsEscalated:      f.IsEscalated,
		ResponseAt:       f.ResponseAt,
	}
}

func MapDomainFindingToStore(f domain.Finding) store.Finding {
	return store.Finding{
		ID:               f.ID,
		AuditPlanID:      f.AuditPlanID,
		Statement:        f.Statement,
		Requirement:      f.Requirement,
		Evidence:         f.Evidence,
		FindingType:      string(f.Type),
		StandardClause:   f.StandardClause,
		ClauseNumber:     f.ClauseNumber,
		Area:             f.Area,
		Auditor:          f.Auditor,
		Auditee:          f.Auditee,
		CreatedAt:        f.CreatedAt,
		Status:           string(f.Status),
		Deadline:         f.Deadline,
		AttachmentName:   f.AttachmentName,
		RejectionRemarks: f.RejectionRemarks,
		AuditType:        string(f.AuditType),
		ProcessName:      f.ProcessName,
		IsEscalated:      f.IsEscalated,
		ResponseAt:       f.ResponseAt,
	}
}

func MapStoreFindingsToDomain(fs []store.Finding) []domain.Finding {
	out := make([]domain.Finding, 0, len(fs))
	for _, f := range fs {
		out = append(out, MapStoreFindingToDomain(f))
	}
	return out
}

func MapFindingDomainToApi(f domain.Finding, daysRemaining int) api.Finding {
	return api.Finding{
		ID:               f.ID,
		AuditPlanID:      f.AuditPlanID,
		Statement:        f.Statement,
		Requirement:      f.Requirement,
		Evidence:         f.Evidence,
		FindingType:      string(f.Type),
		StandardClause:   f.StandardClause,
		ClauseNumber:     f.ClauseNumber,
		Area:             f.Area,
		Auditor:          f.Auditor,
		Auditee:          f.Auditee,
		CreatedAt:        f.CreatedAt,
		Status:           string(f.Status),
		Deadline:         f.Deadline,
		DaysRemaining:    daysRemaining,
		AttachmentName:   f.AttachmentName,
		RejectionRemarks: f.RejectionRemarks,
		AuditType:        string(f.AuditType),
		ProcessName:      f.ProcessName,
		IsEscalated:      f.IsEscalated,
		ResponseAt:       f.ResponseAt,
	}
}

func MapStoreActionPlanToDomain(p store.ActionPlan) domain.ActionPlan {
	return domain.ActionPlan{
		ID:                  p.ID,
		FindingID:           p.FindingID,
		ImmediateCorrection: p.ImmediateCorrection,
		ResponsiblePerson:   p.ResponsiblePerson,
		RootCause:           p.RootCause,
		CorrectiveAction:    p.CorrectiveAction,
		DueDate:             p.DueDate,
		SubmittedAt:         p.SubmittedAt,
		CompletedAt:         p.CompletedAt,
		Remarks:             p.Remarks,
	}
}

func MapDomainActionPlanToStore(p domain.ActionPlan) store.ActionPlan {
	return store.ActionPlan{
		ID:                  p.ID,
		FindingID:           p.FindingID,
		ImmediateCorrection: p.ImmediateCorrection,
		ResponsiblePerson:   p.ResponsiblePerson,
		RootCause:           p.RootCause,
		CorrectiveAction:    p.CorrectiveAction,
		DueDate:             p.DueDate,
		SubmittedAt:         p.SubmittedAt,
		CompletedAt:         p.CompletedAt,
		Remarks:             p.Remarks,
	}
}

func MapStoreActionPlansToDomain(ps []store.ActionPlan) []domain.ActionPlan {
	out := make([]domain.ActionPlan, 0, len(ps))
	for _, p := range ps {
		out = append(out, MapStoreActionPlanToDomain(p))
	}
	return out
}

func MapActionPlanDomainToApi(p domain.ActionPlan) api.ActionPlan {
	return api.ActionPlan{
		ID:                  p.ID,
		FindingID:           p.FindingID,
		ImmediateCorrection: p.ImmediateCorrection,
		ResponsiblePerson:   p.ResponsiblePerson,
		RootCause:           p.RootCause,
		CorrectiveAction:    p.CorrectiveAction,
		DueDate:             p.DueDate,
		SubmittedAt:         p.SubmittedAt,
		CompletedAt:         p.CompletedAt,
		Remarks:             p.Remarks,
	}
}
