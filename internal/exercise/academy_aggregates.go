package exercise

func init() {
	Register(&Exercise{
		Name:        "academy-aggregates",
		Title:       "Academy: aggregates, grouping and subqueries",
		Description: "Timetable with auditoriums, students and dated lectures; counts, averages, HAVING and correlated subqueries.",
		Steps: []Step{
			Query("Teachers of the Software Development department",
				`SELECT COUNT(*) AS teachers
				FROM Teachers t
				JOIN Departments d ON t.DepartmentId = d.Id
				WHERE d.Name = 'Software Development'`),
			Query("Lectures given by Dave McQueen",
				`SELECT COUNT(*) AS lectures
				FROM Lectures l
				JOIN Teachers t ON l.TeacherId = t.Id
				WHERE t.Name = 'Dave' AND t.Surname = 'McQueen'`),
			Query("Lectures held in auditorium D201",
				`SELECT COUNT(*) AS lectures
				FROM Lectures l
				JOIN Auditoriums a ON l.AuditoriumId = a.Id
				WHERE a.Name = 'D201'`),
			Query("Auditoriums and their lecture counts",
				`SELECT a.Name AS auditorium, COUNT(l.Id) AS lectures
				FROM Auditoriums a
				LEFT JOIN Lectures l ON a.Id = l.AuditoriumId
				GROUP BY a.Id
				ORDER BY a.Name`),
			Query("Students attending lectures of Jack Underhill",
				`SELECT COUNT(DISTINCT gs.StudentId) AS students
				FROM Teachers t
				JOIN Lectures l ON t.Id = l.TeacherId
				JOIN GroupsLectures gl ON gl.LectureId = l.Id
				JOIN GroupsStudents gs ON gs.GroupId = gl.GroupId
				WHERE t.Name = 'Jack' AND t.Surname = 'Underhill'`),
			Query("Average salary at the Computer Science faculty",
				`SELECT AVG(t.Salary) AS average_salary
				FROM Teachers t
				JOIN Departments d ON t.DepartmentId = d.Id
				JOIN Faculties f ON d.FacultyId = f.Id
				WHERE f.Name = 'Computer Science'`),
			Query("Smallest and largest group size",
				`SELECT MIN(cnt) AS min_students, MAX(cnt) AS max_students
				FROM (
					SELECT g.Id, COUNT(gs.StudentId) AS cnt
					FROM Groups g
					LEFT JOIN GroupsStudents gs ON g.Id = gs.GroupId
					GROUP BY g.Id
				)`),
			Query("Average department financing",
				`SELECT AVG(Financing) AS average_financing FROM Departments`),
			Query("Teachers and number of subjects they teach",
				`SELECT t.Name || ' ' || t.Surname AS teacher, COUNT(DISTINCT l.SubjectId) AS subjects
				FROM Teachers t
				LEFT JOIN Lectures l ON t.Id = l.TeacherId
				GROUP BY t.Id`),
			Query("Lectures per day of week",
				`WITH Days (day_num, name) AS (
					SELECT 0, 'Sunday' UNION ALL
					SELECT 1, 'Monday' UNION ALL
					SELECT 2, 'Tuesday' UNION ALL
					SELECT 3, 'Wednesday' UNION ALL
					SELECT 4, 'Thursday' UNION ALL
					SELECT 5, 'Friday' UNION ALL
					SELECT 6, 'Saturday'
				)
				SELECT d.name AS day, COUNT(l.Id) AS lectures
				FROM Days d
				LEFT JOIN Lectures l ON strftime('%w', l.Date) = CAST(d.day_num AS TEXT)
				GROUP BY d.day_num, d.name
				ORDER BY d.day_num`),
			Query("Auditoriums and number of departments lecturing there",
				`SELECT a.Name AS auditorium, COUNT(DISTINCT t.DepartmentId) AS departments
				FROM Auditoriums a
				LEFT JOIN Lectures l ON a.Id = l.AuditoriumId
				LEFT JOIN Teachers t ON l.TeacherId = t.Id
				GROUP BY a.Id
				ORDER BY a.Name`),
			Query("Faculties and number of subjects taught",
				`SELECT f.Name AS faculty, COUNT(DISTINCT l.SubjectId) AS subjects
				FROM Faculties f
				LEFT JOIN Departments d ON d.FacultyId = f.Id
				LEFT JOIN Teachers t ON t.DepartmentId = d.Id
				LEFT JOIN Lectures l ON l.TeacherId = t.Id
				GROUP BY f.Id`),
			Query("Lectures per teacher and auditorium pair",
				`SELECT t.Name || ' ' || t.Surname AS teacher, a.Name AS auditorium, COUNT(l.Id) AS lectures
				FROM Teachers t
				LEFT JOIN Lectures l ON l.TeacherId = t.Id
				LEFT JOIN Auditoriums a ON a.Id = l.AuditoriumId
				GROUP BY t.Id, a.Id`),
			Query("Buildings where total department financing exceeds 100000",
				`SELECT Building
				FROM Departments
				GROUP BY Building
				HAVING SUM(Financing) > 100000`),
			Query("Fifth-year Software Development groups with more than 10 lectures in the first week",
				`SELECT g.Name
				FROM Groups g
				JOIN Departments d ON g.DepartmentId = d.Id
				JOIN GroupsLectures gl ON gl.GroupId = g.Id
				JOIN Lectures l ON l.Id = gl.LectureId
				WHERE g.Year = 5
					AND d.Name = 'Software Development'
					AND l.Date < date((SELECT MIN(Date) FROM Lectures), '+7 days')
				GROUP BY g.Id
				HAVING COUNT(l.Id) > 10`),
			Query("Groups rated above group D221",
				`SELECT g.Name, AVG(s.Rating) AS rating
				FROM Groups g
				JOIN GroupsStudents gs ON g.Id = gs.GroupId
				JOIN Students s ON s.Id = gs.StudentId
				GROUP BY g.Id
				HAVING AVG(s.Rating) > (
					SELECT AVG(s.Rating)
					FROM Groups g
					JOIN GroupsStudents gs ON g.Id = gs.GroupId
					JOIN Students s ON s.Id = gs.StudentId
					WHERE g.Name = 'D221'
				)`),
			Query("Teachers paid above the professors' average",
				`SELECT Name, Surname
				FROM Teachers
				WHERE Salary > (SELECT AVG(Salary) FROM Teachers WHERE IsProfessor = 1)`),
			Query("Groups with more than one curator",
				`SELECT g.Name
				FROM Groups g
				JOIN GroupsCurators gc ON g.Id = gc.GroupId
				GROUP BY g.Id
				HAVING COUNT(gc.CuratorId) > 1`),
			Query("Groups rated below the weakest fifth-year group",
				`SELECT g.Name, AVG(s.Rating) AS rating
				FROM Groups g
				JOIN GroupsStudents gs ON g.Id = gs.GroupId
				JOIN Students s ON s.Id = gs.StudentId
				GROUP BY g.Id
				HAVING AVG(s.Rating) < (
					SELECT MIN(avg_rating)
					FROM (
						SELECT AVG(s.Rating) AS avg_rating
						FROM Groups g
						JOIN GroupsStudents gs ON g.Id = gs.GroupId
						JOIN Students s ON s.Id = gs.StudentId
						WHERE g.Year = 5
						GROUP BY g.Id
					)
				)`),
			Query("Faculties financed above Computer Science",
				`SELECT f.Name
				FROM Faculties f
				JOIN Departments d ON d.FacultyId = f.Id
				GROUP BY f.Id
				HAVING SUM(d.Financing) > (
					SELECT SUM(d.Financing)
					FROM Faculties f
					JOIN Departments d ON d.FacultyId = f.Id
					WHERE f.Name = 'Computer Science'
				)`),
			Query("Subjects and the teacher giving most lectures on each",
				`SELECT s.Name AS subject, t.Name || ' ' || t.Surname AS teacher
				FROM Subjects s
				JOIN Lectures l ON s.Id = l.SubjectId
				JOIN Teachers t ON t.Id = l.TeacherId
				GROUP BY s.Id, t.Id
				HAVING COUNT(l.Id) = (
					SELECT MAX(cnt)
					FROM (
						SELECT COUNT(*) AS cnt
						FROM Lectures l2
						WHERE l2.SubjectId = s.Id
						GROUP BY l2.TeacherId
					)
				)`),
			Query("Subject with the fewest lectures",
				`SELECT s.Name
				FROM Subjects s
				JOIN Lectures l ON s.Id = l.SubjectId
				GROUP BY s.Id
				ORDER BY COUNT(l.Id) ASC
				LIMIT 1`),
			Query("Students and subjects of the Software Development department",
				`SELECT
					(SELECT COUNT(DISTINCT gs.StudentId)
						FROM GroupsStudents gs
						JOIN Groups g ON g.Id = gs.GroupId
						WHERE g.DepartmentId = d.Id) AS students,
					(SELECT COUNT(DISTINCT l.SubjectId)
						FROM Lectures l
						JOIN Teachers t ON t.Id = l.TeacherId
						WHERE t.DepartmentId = d.Id) AS subjects
				FROM Departments d
				WHERE d.Name = 'Software Development'`),
		},
	})
}
