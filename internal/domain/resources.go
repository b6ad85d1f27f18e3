package domain

var Tasks = Resource{
	Name:  "tasks",
	Table: "tasks",
	Fields: []Field{
		{Name: "titulo", Kind: KindText, Required: true},
		{Name: "descricao", Kind: KindText},
		{Name: "status", Kind: KindText, Default: "pendente"},
		{Name: "prioridade", Kind: KindText, Default: "media"},
		{Name: "data_vencimento", Kind: KindDate},
		{Name: "projeto_id", Kind: KindText},
		{Name: "subtarefas", Kind: KindJSON},
	},
	OrderBy:   ColCreatedAt,
	Desc:      true,
	FilterKey: "projeto_id",
}

var Projects = Resource{
	Name:  "projects",
	Table: "projects",
	Fields: []Field{
		{Name: "nome", Kind: KindText, Required: true},
		{Name: "descricao", Kind: KindText},
		{Name: "status", Kind: KindText, Default: "ativo"},
		{Name: "cor", Kind: KindText},
		{Name: "data_inicio", Kind: KindDate},
		{Name: "data_fim", Kind: KindDate},
		{Name: "progresso", Kind: KindInt, Default: int64(0)},
	},
	OrderBy: ColCreatedAt,
	Desc:    true,
}

var Courses = Resource{
	Name:  "courses",
	Table: "courses",
	Fields: []Field{
		{Name: "titulo", Kind: KindText, Required: true},
		{Name: "plataforma", Kind: KindText},
		{Name: "instrutor", Kind: KindText},
		{Name: "url", Kind: KindText},
		{Name: "status", Kind: KindText, Default: "em_andamento"},
		{Name: "progresso", Kind: KindInt, Default: int64(0)},
		{Name: "total_aulas", Kind: KindInt, Default: int64(0)},
		{Name: "aulas_concluidas", Kind: KindInt, Default: int64(0)},
	},
	OrderBy: ColCreatedAt,
	Desc:    true,
}

// Lessons are listed in course order rather than by recency.
var Lessons = Resource{
	Name:  "lessons",
	Table: "lessons",
	Fields: []Field{
		{Name: "curso_id", Kind: KindText, Required: true},
		{Name: "titulo", Kind: KindText, Required: true},
		{Name: "ordem", Kind: KindInt, Default: int64(0)},
		{Name: "duracao_minutos", Kind: KindInt},
		{Name: "concluida", Kind: KindBool, Default: false},
		{Name: "anotacoes", Kind: KindText},
	},
	OrderBy:   "ordem",
	FilterKey: "curso_id",
}

var Books = Resource{
	Name:  "books",
	Table: "books",
	Fields: []Field{
		{Name: "titulo", Kind: KindText, Required: true},
		{Name: "autor", Kind: KindText},
		{Name: "status", Kind: KindText, Default: "quero_ler"},
		{Name: "total_paginas", Kind: KindInt},
		{Name: "pagina_atual", Kind: KindInt, Default: int64(0)},
		{Name: "avaliacao", Kind: KindInt},
		{Name: "notas", Kind: KindText},
	},
	OrderBy: ColUpdatedAt,
	Desc:    true,
}

var Notes = Resource{
	Name:  "notes",
	Table: "notes",
	Fields: []Field{
		{Name: "titulo", Kind: KindText, Required: true},
		{Name: "conteudo", Kind: KindText},
		{Name: "categoria", Kind: KindText},
		{Name: "tags", Kind: KindJSON},
		{Name: "fixada", Kind: KindBool, Default: false},
	},
	OrderBy: ColUpdatedAt,
	Desc:    true,
}

var Habits = Resource{
	Name:  "habits",
	Table: "habits",
	Fields: []Field{
		{Name: "nome", Kind: KindText, Required: true},
		{Name: "descricao", Kind: KindText},
		{Name: "frequencia", Kind: KindText, Default: "diaria"},
		{Name: "meta_diaria", Kind: KindInt},
		{Name: "streak_atual", Kind: KindInt, Default: int64(0)},
		{Name: "melhor_streak", Kind: KindInt, Default: int64(0)},
		{Name: "ativo", Kind: KindBool, Default: true},
		{Name: "cor", Kind: KindText},
	},
	OrderBy: ColCreatedAt,
	Desc:    true,
}

var HabitLogs = Resource{
	Name:  "habit-logs",
	Table: "habit_logs",
	Fields: []Field{
		{Name: "habito_id", Kind: KindText, Required: true},
		{Name: "data", Kind: KindDate, Required: true},
		{Name: "concluido", Kind: KindBool, Default: true},
		{Name: "quantidade", Kind: KindFloat},
		{Name: "observacao", Kind: KindText},
	},
	OrderBy:   "data",
	Desc:      true,
	FilterKey: "habito_id",
}

var Goals = Resource{
	Name:  "goals",
	Table: "goals",
	Fields: []Field{
		{Name: "titulo", Kind: KindText, Required: true},
		{Name: "descricao", Kind: KindText},
		{Name: "categoria", Kind: KindText},
		{Name: "prazo", Kind: KindDate},
		{Name: "status", Kind: KindText, Default: "em_andamento"},
		{Name: "progresso", Kind: KindInt, Default: int64(0)},
		{Name: "marcos", Kind: KindJSON},
	},
	OrderBy: ColCreatedAt,
	Desc:    true,
}

// All returns every resource in route registration order.
func All() []Resource {
	return []Resource{Tasks, Projects, Courses, Lessons, Books, Notes, Habits, HabitLogs, Goals}
}
