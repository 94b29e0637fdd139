package repository

import "github.com/Payphone-Digital/jobboard/pkg/listing"

// Listing schemas name every path a query string may filter, sort, project
// or populate on. Paths follow the JSON shape of the entities.

func auditFields() []listing.Field {
	return []listing.Field{
		{Name: "_id", Column: "id", Kind: listing.KindID},
		{Name: "createdAt", Column: "created_at", Kind: listing.KindTime},
		{Name: "updatedAt", Column: "updated_at", Kind: listing.KindTime},
		{Name: "createdBy._id", Column: "created_by_id", Kind: listing.KindID},
		{Name: "createdBy.email", Column: "created_by_email"},
		{Name: "updatedBy._id", Column: "updated_by_id", Kind: listing.KindID},
		{Name: "updatedBy.email", Column: "updated_by_email"},
	}
}

func withAudit(fields ...listing.Field) *listing.Schema {
	return listing.NewSchema(append(auditFields(), fields...)...)
}

// PasswordColumn is omitted from every user listing.
const PasswordColumn = "password"

var (
	RoleSchema = withAudit(
		listing.Field{Name: "name", Column: "name"},
		listing.Field{Name: "description", Column: "description"},
		listing.Field{Name: "isActive", Column: "is_active", Kind: listing.KindBool},
	)

	SkillSchema = withAudit(
		listing.Field{Name: "name", Column: "name"},
		listing.Field{Name: "description", Column: "description"},
		listing.Field{Name: "isActive", Column: "is_active", Kind: listing.KindBool},
	)

	CategorySchema = withAudit(
		listing.Field{Name: "name", Column: "name"},
		listing.Field{Name: "description", Column: "description"},
		listing.Field{Name: "isActive", Column: "is_active", Kind: listing.KindBool},
	)

	CompanySchema = withAudit(
		listing.Field{Name: "name", Column: "name"},
		listing.Field{Name: "address", Column: "address"},
		listing.Field{Name: "description", Column: "description"},
		listing.Field{Name: "logo", Column: "logo"},
		listing.Field{Name: "industry", Column: "industry"},
		listing.Field{Name: "companySize", Column: "company_size"},
		listing.Field{Name: "country", Column: "country"},
		listing.Field{Name: "workingTime", Column: "working_time"},
		listing.Field{Name: "latitude", Column: "latitude", Kind: listing.KindNumber},
		listing.Field{Name: "longitude", Column: "longitude", Kind: listing.KindNumber},
		listing.Field{Name: "skills", Column: "id", Kind: listing.KindID, Through: "SELECT company_id FROM company_skills WHERE skill_id"},
	).Relate(
		listing.Relation{Path: "skills", Association: "Skills", Schema: SkillSchema},
	)

	// The password hash has no field, so queries never filter, sort or
	// project on it.
	UserSchema = withAudit(
		listing.Field{Name: "name", Column: "name"},
		listing.Field{Name: "email", Column: "email"},
		listing.Field{Name: "age", Column: "age", Kind: listing.KindNumber},
		listing.Field{Name: "gender", Column: "gender"},
		listing.Field{Name: "address", Column: "address"},
		listing.Field{Name: "role", Column: "role_id", Kind: listing.KindID},
		listing.Field{Name: "roleId", Column: "role_id", Kind: listing.KindID},
		listing.Field{Name: "role._id", Column: "role_id", Kind: listing.KindID},
		listing.Field{Name: "company._id", Column: "company_id", Kind: listing.KindID},
		listing.Field{Name: "company.name", Column: "company_name"},
		listing.Field{Name: "attachedCvs", Column: "attached_cvs"},
	).Relate(
		listing.Relation{Path: "role", Association: "Role", ForeignKey: "role_id", Schema: RoleSchema},
	)

	JobSchema = withAudit(
		listing.Field{Name: "name", Column: "name"},
		listing.Field{Name: "location", Column: "location"},
		listing.Field{Name: "salary", Column: "salary", Kind: listing.KindNumber},
		listing.Field{Name: "quantity", Column: "quantity", Kind: listing.KindNumber},
		listing.Field{Name: "level", Column: "level"},
		listing.Field{Name: "description", Column: "description"},
		listing.Field{Name: "startDate", Column: "start_date", Kind: listing.KindTime},
		listing.Field{Name: "endDate", Column: "end_date", Kind: listing.KindTime},
		listing.Field{Name: "isActive", Column: "is_active", Kind: listing.KindBool},
		listing.Field{Name: "isHot", Column: "is_hot", Kind: listing.KindBool},
		listing.Field{Name: "company", Column: "company_id", Kind: listing.KindID},
		listing.Field{Name: "companyId", Column: "company_id", Kind: listing.KindID},
		listing.Field{Name: "company._id", Column: "company_id", Kind: listing.KindID},
		listing.Field{Name: "category", Column: "category_id", Kind: listing.KindID},
		listing.Field{Name: "categoryId", Column: "category_id", Kind: listing.KindID},
		listing.Field{Name: "category._id", Column: "category_id", Kind: listing.KindID},
		listing.Field{Name: "skills", Column: "id", Kind: listing.KindID, Through: "SELECT job_id FROM job_skills WHERE skill_id"},
	).Relate(
		listing.Relation{Path: "company", Association: "Company", ForeignKey: "company_id", Schema: CompanySchema},
		listing.Relation{Path: "category", Association: "Category", ForeignKey: "category_id", Schema: CategorySchema},
		listing.Relation{Path: "skills", Association: "Skills", Schema: SkillSchema},
	)

	BlogSchema = withAudit(
		listing.Field{Name: "title", Column: "title"},
		listing.Field{Name: "content", Column: "content"},
		listing.Field{Name: "description", Column: "description"},
		listing.Field{Name: "thumbnail", Column: "thumbnail"},
		listing.Field{Name: "status", Column: "status"},
		listing.Field{Name: "views", Column: "views", Kind: listing.KindNumber},
		listing.Field{Name: "author", Column: "author_id", Kind: listing.KindID},
		listing.Field{Name: "author._id", Column: "author_id", Kind: listing.KindID},
		listing.Field{Name: "tags", Column: "id", Through: "SELECT blogs.id FROM blogs, jsonb_array_elements_text(blogs.tags) AS tag WHERE tag"},
	).Relate(
		listing.Relation{Path: "author", Association: "Author", ForeignKey: "author_id", Schema: UserSchema},
	)

	ApplicationSchema = withAudit(
		listing.Field{Name: "email", Column: "email"},
		listing.Field{Name: "cvUrl", Column: "cv_url"},
		listing.Field{Name: "status", Column: "status"},
		listing.Field{Name: "user", Column: "user_id", Kind: listing.KindID},
		listing.Field{Name: "userId", Column: "user_id", Kind: listing.KindID},
		listing.Field{Name: "user._id", Column: "user_id", Kind: listing.KindID},
		listing.Field{Name: "job", Column: "job_id", Kind: listing.KindID},
		listing.Field{Name: "jobId", Column: "job_id", Kind: listing.KindID},
		listing.Field{Name: "job._id", Column: "job_id", Kind: listing.KindID},
		listing.Field{Name: "job.createdBy._id", Column: "job_id", Kind: listing.KindID, Through: "SELECT id FROM jobs WHERE deleted_at IS NULL AND created_by_id"},
	).Relate(
		listing.Relation{Path: "user", Association: "User", ForeignKey: "user_id", Schema: UserSchema},
		listing.Relation{Path: "job", Association: "Job", ForeignKey: "job_id", Schema: JobSchema},
	)
)
