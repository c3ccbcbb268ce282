package domain

import "time"

// Employee is the transactional employee record owned by this system.
// It is upserted by badge on every order submission; name and sector
// always reflect the latest submission.
type Employee struct {
	ID        int64     `gorm:"primaryKey" json:"id,string"`
	Name      string    `json:"nome"`
	Sector    string    `json:"setor"`
	Badge     string    `gorm:"uniqueIndex" json:"cracha"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Employee) TableName() string {
	return "funcionarios"
}

// DirectoryEmployee is one row of the externally maintained employee
// directory snapshot, used only to pre-fill the submission form. It is
// reference data, distinct from the transactional Employee record.
type DirectoryEmployee struct {
	ID         int64  `gorm:"primaryKey" json:"id,string"`
	Badge      int64  `gorm:"uniqueIndex" json:"cracha"`
	FullName   string `json:"nome_completo"`
	CostCenter string `json:"descricao_centro_custo"`
}

// TableName Specify table name
func (DirectoryEmployee) TableName() string {
	return "funcionarios_json"
}
