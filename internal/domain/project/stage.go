package project

// Stage is the project's lifecycle phase.
type Stage string

const (
	StageBrief       Stage = "brief"
	StageConcepting  Stage = "concepting"
	StageVoting      Stage = "voting"
	StageFinalReview Stage = "finalReview"
	StageApproved    Stage = "approved"
	StageProduction  Stage = "production"
	StageComplete    Stage = "complete"
)

// StageOp identifies an operation that can move a project between stages.
type StageOp string

const (
	OpGenerateConcepts        StageOp = "generate_concepts"
	OpScheduleVotingWindow    StageOp = "schedule_voting_window"
	OpCloseVotingWindow       StageOp = "close_voting_window"
	OpApproveConcept          StageOp = "approve_concept"
	OpCreateProductionPackage StageOp = "create_production_package"
	OpCompleteOrder           StageOp = "complete_order"
)

// stageTransitions maps (operation, current stage) to the next stage.
// Repeating an operation within the stage it drives stays legal, so the
// engine can regenerate concepts, reschedule a window, re-close a round,
// or rebuild the production package without a reset.
var stageTransitions = map[StageOp]map[Stage]Stage{
	OpGenerateConcepts: {
		StageBrief:      StageConcepting,
		StageConcepting: StageConcepting,
	},
	OpScheduleVotingWindow: {
		StageConcepting: StageVoting,
		StageVoting:     StageVoting,
	},
	OpCloseVotingWindow: {
		StageVoting:      StageFinalReview,
		StageFinalReview: StageFinalReview,
	},
	OpApproveConcept: {
		StageConcepting:  StageApproved,
		StageVoting:      StageApproved,
		StageFinalReview: StageApproved,
		StageApproved:    StageApproved,
	},
	OpCreateProductionPackage: {
		StageApproved:   StageProduction,
		StageProduction: StageProduction,
	},
	OpCompleteOrder: {
		StageApproved:   StageComplete,
		StageProduction: StageComplete,
		StageComplete:   StageComplete,
	},
}

// AdvanceStage moves the project to the stage the operation leads to.
// Operations fired out of lifecycle order return ErrInvalidStageTransition
// and leave the project unchanged.
func AdvanceStage(p *Project, op StageOp) error {
	next, ok := stageTransitions[op][p.Stage]
	if !ok {
		return ErrInvalidStageTransition
	}
	p.Stage = next
	return nil
}
