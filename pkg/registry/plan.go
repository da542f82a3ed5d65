package registry

type PlanStep struct {
	Action Action
	Target *KeyedRecord
}

type ResolutionPlan struct {
	Conflicts []*KeyedRecord
	Steps     []*PlanStep
}

func (plan *ResolutionPlan) AddAction(action Action, on *KeyedRecord) {
	plan.Steps = append(plan.Steps, &PlanStep{
		Action: action,
		Target: on,
	})
}
