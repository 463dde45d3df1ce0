package consts

// CreatedAt document creation time field
const CreatedAt = "created_at"

// UpdatedAt document update time field
const UpdatedAt = "updated_at"
