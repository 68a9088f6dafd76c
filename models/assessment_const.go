package models

// QuestionBlock is the closed set of competency categories a question belongs to.
// Values outside this set are normalized at the AI-generation boundary and never
// reach template composition or scoring.
type QuestionBlock string

const (
	BlockMasterData  QuestionBlock = "MasterData"
	BlockProcess     QuestionBlock = "Process"
	BlockSoftSkill   QuestionBlock = "SoftSkill"
	BlockSAPActivate QuestionBlock = "SAPActivate"
	BlockCleanCore   QuestionBlock = "CleanCore"
)

func AllBlocks() []QuestionBlock {
	return []QuestionBlock{
		BlockMasterData,
		BlockProcess,
		BlockSoftSkill,
		BlockSAPActivate,
		BlockCleanCore,
	}
}

func (b QuestionBlock) IsValid() bool {
	switch b {
	case BlockMasterData, BlockProcess, BlockSoftSkill, BlockSAPActivate, BlockCleanCore:
		return true
	}
	return false
}

type SeniorityLevel string

const (
	LevelJunior SeniorityLevel = "Junior"
	LevelMiddle SeniorityLevel = "Pleno"
	LevelSenior SeniorityLevel = "Senior"
)

// Approval thresholds on the 0-50 scale produced by scoring.
const (
	JuniorThreshold = 25.0
	MiddleThreshold = 35.0
	SeniorThreshold = 42.5
	// DefaultThreshold is applied when the level is not recognized.
	DefaultThreshold = MiddleThreshold
)

type DeploymentType string

const (
	DeploymentPrivateCloud DeploymentType = "private_cloud"
	DeploymentPublicCloud  DeploymentType = "public_cloud"
)

type CandidateStatus string

const (
	CandidateStatusPending    CandidateStatus = "Pending"
	CandidateStatusInProgress CandidateStatus = "InProgress"
	CandidateStatusCompleted  CandidateStatus = "Completed"
)

type SessionState string

const (
	SessionNotStarted SessionState = "NotStarted"
	SessionRunning    SessionState = "Running"
	SessionCompleted  SessionState = "Completed"
	SessionExpired    SessionState = "Expired"
)

func (s SessionState) IsTerminal() bool {
	return s == SessionCompleted || s == SessionExpired
}

// UnansweredOption is stored in result details when the candidate never
// selected an option for a question.
const UnansweredOption = -1
