package exercise

func init() {
	Register(&Exercise{
		Name:        "academy-joins",
		Title:       "Academy: joins across related tables",
		Description: "Curators, subjects, lectures and link tables with enforced foreign keys; multi-table joins.",
		ForeignKeys: true,
		Steps: []Step{
			Query("Every teacher and group pair",
				`SELECT Teachers.Surname, Groups.Name FROM Teachers, Groups`),
			Query("Faculties with a department financed above the faculty",
				`SELECT DISTINCT Faculties.Name
				FROM Faculties
				JOIN Departments ON Departments.FacultyId = Faculties.Id
				WHERE Departments.Financing > Faculties.Financing`),
			Query("Curators and their groups",
				`SELECT Curators.Surname, Groups.Name
				FROM Curators
				JOIN GroupsCurators ON Curators.Id = GroupsCurators.CuratorId
				JOIN Groups ON Groups.Id = GroupsCurators.GroupId`),
			Query("Teachers lecturing group P107",
				`SELECT Teachers.Name, Teachers.Surname
				FROM Teachers
				JOIN Lectures ON Teachers.Id = Lectures.TeacherId
				JOIN GroupsLectures ON Lectures.Id = GroupsLectures.LectureId
				JOIN Groups ON Groups.Id = GroupsLectures.GroupId
				WHERE Groups.Name = 'P107'`),
			Query("Teachers and the faculties they lecture at",
				`SELECT DISTINCT Teachers.Surname, Faculties.Name
				FROM Teachers
				JOIN Lectures ON Teachers.Id = Lectures.TeacherId
				JOIN GroupsLectures ON Lectures.Id = GroupsLectures.LectureId
				JOIN Groups ON Groups.Id = GroupsLectures.GroupId
				JOIN Departments ON Groups.DepartmentId = Departments.Id
				JOIN Faculties ON Departments.FacultyId = Faculties.Id`),
			Query("Departments and their groups",
				`SELECT Departments.Name, Groups.Name
				FROM Departments
				JOIN Groups ON Groups.DepartmentId = Departments.Id`),
			Query("Subjects taught by Samantha Adams",
				`SELECT Subjects.Name
				FROM Subjects
				JOIN Lectures ON Subjects.Id = Lectures.SubjectId
				JOIN Teachers ON Teachers.Id = Lectures.TeacherId
				WHERE Teachers.Name = 'Samantha' AND Teachers.Surname = 'Adams'`),
			Query("Departments whose groups study Database Theory",
				`SELECT DISTINCT Departments.Name
				FROM Departments
				JOIN Groups ON Groups.DepartmentId = Departments.Id
				JOIN GroupsLectures ON Groups.Id = GroupsLectures.GroupId
				JOIN Lectures ON Lectures.Id = GroupsLectures.LectureId
				JOIN Subjects ON Subjects.Id = Lectures.SubjectId
				WHERE Subjects.Name = 'Database Theory'`),
			Query("Groups of the Computer Science faculty",
				`SELECT Groups.Name
				FROM Groups
				JOIN Departments ON Groups.DepartmentId = Departments.Id
				JOIN Faculties ON Departments.FacultyId = Faculties.Id
				WHERE Faculties.Name = 'Computer Science'`),
			Query("Fifth-year groups and their faculties",
				`SELECT Groups.Name, Faculties.Name
				FROM Groups
				JOIN Departments ON Groups.DepartmentId = Departments.Id
				JOIN Faculties ON Departments.FacultyId = Faculties.Id
				WHERE Groups.Year = 5`),
			Query("Lectures held in room B103",
				`SELECT Teachers.Name || ' ' || Teachers.Surname AS Teacher,
					Subjects.Name AS Subject,
					Groups.Name AS "Group"
				FROM Teachers
				JOIN Lectures ON Teachers.Id = Lectures.TeacherId
				JOIN Subjects ON Subjects.Id = Lectures.SubjectId
				JOIN GroupsLectures ON Lectures.Id = GroupsLectures.LectureId
				JOIN Groups ON Groups.Id = GroupsLectures.GroupId
				WHERE Lectures.LectureRoom = 'B103'`),
			Reject("Group in a missing department is refused",
				SQL(`INSERT INTO Groups (Name, Year, DepartmentId) VALUES ('X999', 1, 42)`)),
		},
	})
}
