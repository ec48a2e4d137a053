package store

import "college-api/models"

// VerifyModuleLogin проверяет логин модуля точным сравнением строк.
func (s *Store) VerifyModuleLogin(subject, username, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, ok := s.doc.Modules[subject]
	return ok && cred.Username == username && cred.Password == password
}

// VerifyTeacherLogin возвращает предмет преподавателя при успехе.
// Неверное имя и неверный пароль неразличимы для вызывающего.
func (s *Store) VerifyTeacherLogin(name, password string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, ok := s.doc.Teachers[name]
	if !ok || cred.Password != password {
		return "", false
	}
	return cred.Subject, true
}

// UpdateTeacherPassword меняет пароль преподавателя и сохраняет документ.
func (s *Store) UpdateTeacherPassword(name, currentPassword, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, ok := s.doc.Teachers[name]
	if !ok || cred.Password != currentPassword {
		return ErrUnauthorized
	}

	old := cred.Password
	cred.Password = newPassword
	s.doc.Teachers[name] = cred

	if err := s.save(); err != nil {
		cred.Password = old
		s.doc.Teachers[name] = cred
		return err
	}
	return nil
}

// Teachers возвращает копию таблицы учётных данных преподавателей.
func (s *Store) Teachers() map[string]models.TeacherCredential {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]models.TeacherCredential, len(s.doc.Teachers))
	for name, cred := range s.doc.Teachers {
		out[name] = cred
	}
	return out
}

// Modules возвращает копию таблицы учётных данных модулей.
func (s *Store) Modules() map[string]models.ModuleCredential {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]models.ModuleCredential, len(s.doc.Modules))
	for subject, cred := range s.doc.Modules {
		out[subject] = cred
	}
	return out
}
