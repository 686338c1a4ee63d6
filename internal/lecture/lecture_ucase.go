package lecture

import (
	"context"

	"github.com/gosimple/slug"
	"github.com/rajdevullash/lms-task-backend/internal/domain"
	"github.com/rajdevullash/lms-task-backend/internal/progress"
	"go.elastic.co/apm"
)

const notesFolder = "lecture-notes"

// LectureUseCaseImpl ...
type LectureUseCaseImpl struct {
	LectureRepository domain.LectureRepository
	CourseRepository  domain.CourseRepository
	ModuleRepository  domain.CourseModuleRepository
	ProgressRepo      domain.ProgressRepository
	MediaStore        domain.MediaStore
}

var _ domain.LectureUseCase = &LectureUseCaseImpl{}

// NewLectureUseCase ...
func NewLectureUseCase(
	LectureRepository domain.LectureRepository,
	CourseRepository domain.CourseRepository,
	ModuleRepository domain.CourseModuleRepository,
	ProgressRepo domain.ProgressRepository,
	MediaStore domain.MediaStore,
) *LectureUseCaseImpl {
	return &LectureUseCaseImpl{
		LectureRepository: LectureRepository,
		CourseRepository:  CourseRepository,
		ModuleRepository:  ModuleRepository,
		ProgressRepo:      ProgressRepo,
		MediaStore:        MediaStore,
	}
}

// CreateLecture create a lecture at the end of the course sequence. Note
// files go to the media host first and are cleaned up should the insert
// fail.
func (lu *LectureUseCaseImpl) CreateLecture(ctx context.Context, post *domain.LectureModel, notes []*domain.UploadFile) (*domain.LectureModel, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "LectureUseCaseImpl.CreateLecture", "service")
	defer apmSpan.End()

	if post.ModuleID == "" || post.CourseID == "" {
		return nil, domain.NewBadRequestError("Module ID and Course ID are required")
	}
	if len(notes) == 0 {
		return nil, domain.NewBadRequestError("PDF notes are required")
	}

	module, err := lu.ModuleRepository.FindByID(ctx, post.ModuleID)
	if err != nil {
		return nil, err
	}
	course, err := lu.CourseRepository.FindByID(ctx, post.CourseID)
	if err != nil {
		return nil, err
	}
	if module == nil || course == nil {
		return nil, domain.NewNotFoundError("Module or Course not found")
	}

	// max+1, not count+1: a deleted lecture leaves a gap and its order
	// must not be reissued
	max, err := lu.LectureRepository.MaxOrderByCourse(ctx, post.CourseID)
	if err != nil {
		return nil, err
	}
	post.Order = max + 1
	post.Slug = slug.Make(post.Title)

	var uploaded []*domain.MediaAsset
	for _, file := range notes {
		asset, err := lu.MediaStore.Upload(ctx, notesFolder, file)
		if err != nil {
			lu.removeAssets(ctx, uploaded)
			return nil, err
		}
		uploaded = append(uploaded, asset)
	}
	post.PdfNotes = uploaded

	if err := lu.LectureRepository.SaveLecture(ctx, post); err != nil {
		lu.removeAssets(ctx, uploaded)
		return nil, err
	}
	return post, nil
}

// GetAllLectures admin listing with filters and pagination
func (lu *LectureUseCaseImpl) GetAllLectures(ctx context.Context, filter *domain.LectureFilter, page *domain.Pagination) ([]*domain.LectureModel, *domain.ListMeta, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "LectureUseCaseImpl.GetAllLectures", "service")
	defer apmSpan.End()

	page.Normalize()
	lectures, total, err := lu.LectureRepository.FindLectures(ctx, filter, page)
	if err != nil {
		return nil, nil, err
	}
	return lectures, &domain.ListMeta{Page: page.Page, Limit: page.Limit, Total: total}, nil
}

// GetLectureBySlug fetch one lecture with the caller's access state, media
// stripped when locked
func (lu *LectureUseCaseImpl) GetLectureBySlug(ctx context.Context, lectureSlug string, userID string) (*domain.LectureWithAccess, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "LectureUseCaseImpl.GetLectureBySlug", "service")
	defer apmSpan.End()

	lecture, err := lu.LectureRepository.FindBySlug(ctx, lectureSlug)
	if err != nil {
		return nil, err
	}
	if lecture == nil {
		return nil, domain.NewNotFoundError("Lecture not found")
	}

	seq, prog, err := lu.loadAccessState(ctx, userID, lecture.CourseID)
	if err != nil {
		return nil, err
	}
	return annotate(lecture, progress.CheckAccess(seq, prog, lecture.ID, userID != ""), prog), nil
}

// ListWithAccess annotate every lecture with the caller's access state.
// Gating always evaluates against the full course sequence, the module
// filter only narrows the output.
func (lu *LectureUseCaseImpl) ListWithAccess(ctx context.Context, userID, courseID, moduleID string) ([]*domain.LectureWithAccess, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "LectureUseCaseImpl.ListWithAccess", "service")
	defer apmSpan.End()

	if courseID == "" {
		return nil, domain.NewBadRequestError("Course ID is required")
	}

	seq, prog, err := lu.loadAccessState(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.LectureWithAccess, 0, len(seq))
	for _, lecture := range seq {
		if moduleID != "" && lecture.ModuleID != moduleID {
			continue
		}
		result = append(result, annotate(lecture, progress.CheckAccess(seq, prog, lecture.ID, userID != ""), prog))
	}
	return result, nil
}

// UpdateLecture patch title, video or notes. Replacing notes uploads the
// new set before the old one is removed.
func (lu *LectureUseCaseImpl) UpdateLecture(ctx context.Context, lectureSlug string, patch *domain.LectureModel, notes []*domain.UploadFile) (*domain.LectureModel, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "LectureUseCaseImpl.UpdateLecture", "service")
	defer apmSpan.End()

	existing, err := lu.LectureRepository.FindBySlug(ctx, lectureSlug)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NewNotFoundError("Lecture not found")
	}

	if patch.Title != "" {
		existing.Title = patch.Title
		existing.Slug = slug.Make(patch.Title)
	}
	if patch.Video != nil {
		existing.Video = patch.Video
	}
	if len(notes) > 0 {
		var uploaded []*domain.MediaAsset
		for _, file := range notes {
			asset, err := lu.MediaStore.Upload(ctx, notesFolder, file)
			if err != nil {
				lu.removeAssets(ctx, uploaded)
				return nil, err
			}
			uploaded = append(uploaded, asset)
		}
		lu.removeAssets(ctx, existing.PdfNotes)
		existing.PdfNotes = uploaded
	}

	if err := lu.LectureRepository.UpdateLecture(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteLecture remove the lecture and its hosted notes
func (lu *LectureUseCaseImpl) DeleteLecture(ctx context.Context, lectureSlug string) error {
	apmSpan, ctx := apm.StartSpan(ctx, "LectureUseCaseImpl.DeleteLecture", "service")
	defer apmSpan.End()

	existing, err := lu.LectureRepository.FindBySlug(ctx, lectureSlug)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.NewNotFoundError("Lecture not found")
	}
	if err := lu.LectureRepository.DeleteLecture(ctx, existing.ID); err != nil {
		return err
	}
	lu.removeAssets(ctx, existing.PdfNotes)
	return nil
}

func (lu *LectureUseCaseImpl) loadAccessState(ctx context.Context, userID, courseID string) ([]*domain.LectureModel, *domain.ProgressModel, error) {
	seq, err := lu.LectureRepository.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}
	var prog *domain.ProgressModel
	if userID != "" {
		prog, err = lu.ProgressRepo.FindByUserAndCourse(ctx, userID, courseID)
		if err != nil {
			return nil, nil, err
		}
	}
	return seq, prog, nil
}

func (lu *LectureUseCaseImpl) removeAssets(ctx context.Context, assets []*domain.MediaAsset) {
	for _, asset := range assets {
		lu.MediaStore.Delete(ctx, asset.PublicID)
	}
}

// annotate apply one access decision to a lecture view. Locked entries
// never carry media.
func annotate(lecture *domain.LectureModel, decision *domain.AccessDecision, prog *domain.ProgressModel) *domain.LectureWithAccess {
	view := &domain.LectureWithAccess{
		ID:       lecture.ID,
		CourseID: lecture.CourseID,
		ModuleID: lecture.ModuleID,
		Title:    lecture.Title,
		Slug:     lecture.Slug,
		Order:    lecture.Order,
		PdfNotes: []*domain.MediaAsset{},
		IsLocked: !decision.Allowed,
	}
	if prog != nil {
		view.IsCompleted = prog.Completed(lecture.ID)
		view.IsCurrent = prog.CurrentLecture == lecture.ID
	}
	if decision.Allowed {
		view.Video = lecture.Video
		view.PdfNotes = lecture.PdfNotes
	} else {
		view.LockReason = decision.Reason
	}
	return view
}
