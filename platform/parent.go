package platform

import (
	"go.uber.org/zap"

	"eduplatform/models"
)

// AddChild links a student to the parent. Children keep the order in
// which they were linked; linking the same child twice fails.
func (p *Platform) AddChild(parentID, studentID int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	parent, ok := p.users[parentID]
	if !ok || parent.Role != models.RoleParent {
		return ErrNotFound
	}
	if _, ok := p.users[studentID]; !ok {
		return ErrNotFound
	}
	if parent.Parent.HasChild(studentID) {
		return ErrChildAlreadyLinked
	}
	parent.Parent.Children = append(parent.Parent.Children, studentID)
	p.log.Info("child linked", zap.Int("parent", parentID), zap.Int("child", studentID))
	return nil
}

// ChildGrades returns the grade sequences of one of the parent's
// children. Parents can only see grades of students linked to them.
func (p *Platform) ChildGrades(parentID, childID int) (map[string][]int, error) {
	if err := p.checkChildLink(parentID, childID); err != nil {
		return nil, err
	}
	return p.StudentGrades(childID, "")
}

// ChildAssignments returns the submission statuses of one of the
// parent's children, keyed by assignment id.
func (p *Platform) ChildAssignments(parentID, childID int) (map[int]string, error) {
	if err := p.checkChildLink(parentID, childID); err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	child, ok := p.users[childID]
	if !ok || child.Role != models.RoleStudent {
		return nil, ErrNotFound
	}
	out := make(map[int]string, len(child.Student.Assignments))
	for id, status := range child.Student.Assignments {
		out[id] = status
	}
	return out, nil
}

func (p *Platform) checkChildLink(parentID, childID int) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	parent, ok := p.users[parentID]
	if !ok || parent.Role != models.RoleParent {
		return ErrNotFound
	}
	if !parent.Parent.HasChild(childID) {
		return ErrChildNotLinked
	}
	return nil
}
