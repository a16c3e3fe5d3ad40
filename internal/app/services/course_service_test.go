package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehimebase/babybase/internal/app/models"
)

func courseTree(lessonsPerModule ...int) *models.Course {
	c := &models.Course{ID: uuid.New(), Title: "愛媛で働く"}
	for _, n := range lessonsPerModule {
		cur := models.Curriculum{ID: uuid.New(), CourseID: c.ID}
		for i := 0; i < n; i++ {
			cur.Lessons = append(cur.Lessons, models.Lesson{ID: uuid.New(), CurriculumID: cur.ID, SortOrder: i})
		}
		c.Curriculums = append(c.Curriculums, cur)
	}
	return c
}

func TestCourseProgress(t *testing.T) {
	tree := courseTree(2, 1)
	ids := tree.LessonIDs()
	courses := &fakeCourses{trees: map[uuid.UUID]*models.Course{tree.ID: tree}}
	progress := &fakeProgress{done: map[uuid.UUID][]uuid.UUID{tree.ID: {ids[0], ids[2]}}}
	svc := NewCourseService(courses, progress, &fakeRecommendations{}, testLogger)

	res, err := svc.Progress(context.Background(), uuid.New(), tree.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.CompletedLessons)
	assert.Equal(t, 3, res.TotalLessons)
	assert.Equal(t, 66, res.Percent)
	assert.True(t, res.Course.Curriculums[0].Lessons[0].Completed)
	assert.False(t, res.Course.Curriculums[0].Lessons[1].Completed)
}

func TestDashboardNextLesson(t *testing.T) {
	started, untouched, empty := courseTree(2, 2), courseTree(1), courseTree()
	startedIDs := started.LessonIDs()
	courses := &fakeCourses{
		courses: []models.Course{*started, *untouched, *empty},
		trees:   map[uuid.UUID]*models.Course{started.ID: started, untouched.ID: untouched, empty.ID: empty},
	}
	progress := &fakeProgress{done: map[uuid.UUID][]uuid.UUID{started.ID: startedIDs[:2]}}
	user := uuid.New()
	recs := &fakeRecommendations{rows: []models.UserCourseRecommendation{{UserID: user, CourseID: started.ID, Value: "挑戦"}}}
	svc := NewCourseService(courses, progress, recs, testLogger)

	dash, err := svc.Dashboard(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, dash.Courses, 3)

	assert.Equal(t, 50, dash.Courses[0].Percent)
	require.NotNil(t, dash.Courses[0].NextLesson)
	assert.Equal(t, startedIDs[2], dash.Courses[0].NextLesson.ID)

	assert.Equal(t, 0, dash.Courses[1].Percent)
	assert.Equal(t, untouched.LessonIDs()[0], dash.Courses[1].NextLesson.ID)

	assert.Equal(t, 0, dash.Courses[2].TotalLessons)
	assert.Nil(t, dash.Courses[2].NextLesson)
	assert.Len(t, dash.Recommendations, 1)
}
